package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// ConfirmationSubject is the subject line of every confirmation email.
const ConfirmationSubject = "Please confirm your email address"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<html>
<body>
<h2>Welcome!</h2>
<p>Thank you for registering. Please use the following code to confirm your email address:</p>
<h3>{{.Code}}</h3>
<p>If you did not create an account, please ignore this email.</p>
</body>
</html>
`))

// RenderConfirmation renders the HTML body carrying code.
func RenderConfirmation(code string) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, struct{ Code string }{Code: code}); err != nil {
		return "", fmt.Errorf("render confirmation email: %w", err)
	}
	return buf.String(), nil
}
