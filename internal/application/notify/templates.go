package notify

import (
	"fmt"
	"html"
	"time"
)

func renderVerificationEmail(code string, validity time.Duration) (text, htmlBody string) {
	minutes := int(validity.Minutes())

	text = fmt.Sprintf(`Your verification code is: %s

This code will expire in %d minutes.

If you didn't request this code, you can safely ignore this email.`, code, minutes)

	htmlBody = fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h2>Verify Your Email</h2>
	<p>Hello,</p>
	<p>Your verification code is:</p>
	<p style="font-size: 32px; font-weight: bold; letter-spacing: 4px;">%s</p>
	<p>This code will expire in %d minutes.</p>
	<p>If you didn't request this code, you can safely ignore this email.</p>
</body>
</html>`, html.EscapeString(code), minutes)

	return text, htmlBody
}

func renderPasswordSetupEmail(setupURL string, validity time.Duration) (text, htmlBody string) {
	hours := int(validity.Hours())

	text = fmt.Sprintf(`Set Up Your Password

Hello,

You requested to set up a password for your account.
Open the link below to set your password:

%s

This link will expire in %d hours.

If you didn't request this, you can safely ignore this email.`, setupURL, hours)

	escaped := html.EscapeString(setupURL)
	htmlBody = fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h2>Set Up Your Password</h2>
	<p>Hello,</p>
	<p>You requested to set up a password for your account. Click the button below to set your password:</p>
	<p><a href="%s" style="display: inline-block; padding: 12px 30px; background-color: #4CAF50; color: white; text-decoration: none; border-radius: 5px;">Set Up Password</a></p>
	<p>Or copy and paste this link into your browser:</p>
	<p style="word-break: break-all; color: #666;">%s</p>
	<p><strong>This link will expire in %d hours.</strong></p>
	<p>If you didn't request this, you can safely ignore this email.</p>
</body>
</html>`, escaped, escaped, hours)

	return text, htmlBody
}
