// internal/pkg/email/templates.go
package email

const layoutHeader = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">{{.SiteName}}</h1>
`

const layoutFooter = `        <hr>
        <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}. All rights reserved.</p>
    </div>
</body>
</html>`

var templateSources = map[string]string{
	"welcome": layoutHeader + `        <p>Hello {{.UserName}},</p>
        <p>Thanks for signing up! Your account for {{.UserEmail}} is ready, so go ahead and start shopping.</p>
        <p>Best regards,<br>{{.SiteName}} Team</p>
` + layoutFooter,

	"order_status_update": layoutHeader + `        <p>Hello {{.UserName}},</p>
        <p>Your order #{{.OrderID}} is now <strong>{{.Status}}</strong>.</p>
        {{if .Comment}}<p>{{.Comment}}</p>{{end}}
        <p>Best regards,<br>{{.SiteName}} Team</p>
` + layoutFooter,

	"test": layoutHeader + `        <p>Hello {{.UserName}},</p>
        <p>This is a test message from {{.SiteName}}. Email delivery is configured correctly.</p>
` + layoutFooter,
}
