package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"fmm-setup/internal/config"
	"fmm-setup/internal/logger"
)

// GoogleConsoleURL is opened from the instructions dialog.
const GoogleConsoleURL = "https://console.cloud.google.com"

const welcomeText = `This wizard will guide you through installing your family photo sharing system.

What we'll set up:
  • WordPress plugin installation
  • Google Drive connection
  • Mobile app (optional)

What you'll need:
  • WordPress website
  • Google account
  • Google Cloud credentials (we'll show you how)`

const wordPressPathText = `Enter the folder where WordPress is installed.

Usually this is:
  • C:\xampp\htdocs\wordpress
  • C:\wordpress
  • /var/www/html/wordpress`

const urlText = `Enter your WordPress website address (URL).

Examples:
  • https://myfamilyphotos.com
  • https://www.mysite.com/wordpress
  • http://localhost/wordpress (for testing)

Important: Include http:// or https://`

const pwaChoiceText = `The mobile app allows family members to:
  • Take photos directly from their phone
  • Upload pictures easily
  • View the family gallery
  • Install as a home screen app

Recommended: Yes, unless you only want to use WordPress.`

const pwaPathText = `Enter a folder for the mobile app.

This should be a web-accessible folder, like:
  • C:\xampp\htdocs\gallery
  • C:\inetpub\wwwroot\gallery
  • /var/www/html/gallery`

const googleSetupText = `We need to get credentials from Google. Don't worry, we'll guide you!

  1. We'll show you what to do in Google Cloud Console
  2. You'll create OAuth credentials
  3. Paste them here`

const credentialsText = `Copy and paste your credentials from Google Cloud Console.

You should see them in the popup from the previous step.`

// instructionsMarkdown walks the user through creating OAuth credentials.
// The redirect URI must be pasted exactly as shown.
func instructionsMarkdown(wpURL string) string {
	return fmt.Sprintf(`## STEP 1: Create a Google Cloud Project

1. Go to: %[1]s
2. Sign in with your Google account
3. Click the project dropdown (top left)
4. Click **NEW PROJECT**
5. Name it: *Family Media Manager*
6. Click **CREATE**

## STEP 2: Enable Google Drive API

1. Click **APIs & Services** in the left menu
2. Click **Library**
3. Search for: *Google Drive API*
4. Click on it
5. Click the blue **ENABLE** button

## STEP 3: Configure OAuth Consent Screen

1. Go to **APIs & Services → OAuth consent screen**
2. Select **External** user type
3. Click **CREATE**
4. Fill in:
   - App name: Family Media Manager
   - User support email: (your email)
   - Developer contact: (your email)
5. Click **SAVE AND CONTINUE**
6. Click **ADD OR REMOVE SCOPES**
7. Find and check: `+"`.../auth/drive.file`"+`
8. Click **UPDATE**, then **SAVE AND CONTINUE**
9. Click **BACK TO DASHBOARD**

## STEP 4: Create OAuth Credentials

1. Go to **APIs & Services → Credentials**
2. Click **+ CREATE CREDENTIALS**
3. Select **OAuth client ID**
4. Application type: **Web application**
5. Name: *Family Media Manager Web*
6. Under **Authorized redirect URIs**, click **+ ADD URI**
7. Paste this URL exactly:

    %[2]s

8. Click **CREATE**

A popup will show your credentials. Copy them and come back here!
`, GoogleConsoleURL, config.RedirectURI(wpURL))
}

// completionItems lists what the wizard did.
func completionItems(cfg config.InstallConfig) []string {
	items := []string{"✓ Installed WordPress plugin"}
	if cfg.InstallPWA {
		items = append(items, "✓ Installed mobile app")
	}
	return append(items, "✓ Saved Google Drive credentials")
}

// nextStepsMarkdown tells the user what is left to do by hand.
func nextStepsMarkdown(cfg config.InstallConfig) string {
	var b strings.Builder
	b.WriteString("## Next Steps (Important!)\n\n")
	fmt.Fprintf(&b, "1. **Activate the Plugin in WordPress:**  \n   Go to: %s/wp-admin  \n   Click *Plugins* → Find *Family Media Manager* → Click *Activate*\n", cfg.WordPressURL)
	b.WriteString("2. **Connect Google Drive:**  \n   Go to *Family Gallery* → *Settings*  \n   Enter your credentials and click *Connect Google Drive*\n")
	if cfg.InstallPWA {
		b.WriteString("3. **Access the Mobile App:**  \n   Set up your web server to serve files from the PWA folder  \n   Access it from your phone's browser  \n   Install it to your home screen\n")
	}
	return b.String()
}

// renderMarkdown renders md for the terminal, falling back to the raw text
// if glamour cannot build a renderer.
func renderMarkdown(md string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logger.Warn("[WARN] Markdown renderer unavailable: %v\n", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		logger.Warn("[WARN] Failed to render markdown: %v\n", err)
		return md
	}
	return strings.TrimSpace(out)
}
