package service

import "fmt"

func verifyEmailTemplate(verifyURL, appName string) (subject, body string) {
	subject = fmt.Sprintf("Confirm your %s account", appName)
	body = fmt.Sprintf(`Welcome to %s!

Confirm your email address to activate your account:

%s

The link expires in 24 hours. If you didn't sign up, you can ignore this email.
`, appName, verifyURL)
	return subject, body
}

func passwordResetEmailTemplate(resetURL, appName string) (subject, body string) {
	subject = fmt.Sprintf("Reset your %s password", appName)
	body = fmt.Sprintf(`Someone requested a password reset for your %s account.

Set a new password here:

%s

The link expires in 1 hour and can be used once. If this wasn't you, your
password is unchanged and you can ignore this email.
`, appName, resetURL)
	return subject, body
}
