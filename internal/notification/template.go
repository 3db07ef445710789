package notification

import (
	"bytes"
	"html/template"
)

const subjectPrefix = "Todo - "

var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.Subject}}</title></head>
<body style="margin:0;padding:32px 16px;background:#f7f7f8;font-family:system-ui,sans-serif;">
  <div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;overflow:hidden;">
    <div style="background:#1a1a1a;color:#fff;padding:16px 24px;font-weight:600;">{{.Subject}}</div>
    <div style="padding:24px;font-size:14px;line-height:1.6;color:#374151;white-space:pre-wrap;">{{.Body}}</div>
  </div>
</body>
</html>
`))

func buildSubject(subject string) string {
	return subjectPrefix + subject
}

// buildEmailHTML renders the HTML alternative of a message.
func buildEmailHTML(subject, body string) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, struct{ Subject, Body string }{subject, body}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
