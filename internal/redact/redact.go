// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. Lead records carry submitter email
// addresses and the mail and store layers handle SMTP credentials and
// database URLs, none of which may leak into log output through error
// messages.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Database and SMTP connection strings with inline credentials
	connStringRegex = regexp.MustCompile(`(?i)(postgres|postgresql|smtp|smtps)://[^@\s]+@`)

	// Credentials and tokens
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd|pass)([=:\s]['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Email addresses (submitter PII)
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// Local file paths (the lead table location is deployment detail)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// Ordered: connection strings and credentials before the email and
	// path patterns, so an SMTP URL is redacted as a credential rather
	// than as a bare host.
	patterns = []*regexp.Regexp{
		connStringRegex, passwordRegex, apiKeyRegex, emailRegex, unixPathRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		connStringRegex: RedactedCredentialPlaceholder,
		passwordRegex:   RedactedCredentialPlaceholder,
		apiKeyRegex:     RedactedKeyPlaceholder,
		emailRegex:      RedactedEmailPlaceholder,
		unixPathRegex:   RedactedPathPlaceholder,
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
