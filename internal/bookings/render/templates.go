package render

const operatorEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        h1 { color: #1f1f2e; margin-bottom: 20px; }
        .details { background: #f5f5f7; padding: 20px; border-radius: 8px; margin: 20px 0; }
        .details p { margin: 8px 0; }
        .label { font-weight: 600; color: #666; }
        .approve-btn {
            display: inline-block;
            background: linear-gradient(135deg, #3b82f6 0%, #1d4ed8 100%);
            color: white !important;
            text-decoration: none;
            padding: 14px 28px;
            border-radius: 8px;
            font-weight: 600;
            font-size: 16px;
            margin: 20px 0;
        }
        .notes { background: #fff3cd; padding: 15px; border-radius: 8px; margin-top: 15px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>New Booking Request</h1>

        <div class="details">
            <p><span class="label">Name:</span> {{.Name}}</p>
            <p><span class="label">Business:</span> {{.Business}}</p>
            <p><span class="label">Email:</span> {{.Email}}</p>
            <p><span class="label">Date:</span> {{.Date}}</p>
            <p><span class="label">Time:</span> {{.Time}}</p>
            <p><span class="label">Duration:</span> {{.Duration}} minutes</p>
            <p><span class="label">Reason:</span> {{.Reason}}</p>
            {{if .Notes}}<div class="notes"><span class="label">Notes:</span><br>{{.Notes}}</div>{{end}}
        </div>

        <a href="{{.ApproveURL}}" class="approve-btn">Approve This Booking</a>

        <p style="color: #666; font-size: 14px; margin-top: 30px;">
            Clicking approve will send a confirmation email to {{.Email}}
        </p>
    </div>
</body>
</html>
`

const confirmationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; background: #f5f5f7; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .card { background: white; border-radius: 12px; padding: 30px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #1f1f2e; margin-bottom: 10px; }
        .subtitle { color: #666; margin-bottom: 25px; }
        .details { background: #f5f5f7; padding: 20px; border-radius: 8px; margin: 20px 0; }
        .details p { margin: 10px 0; }
        .label { font-weight: 600; color: #3b82f6; }
        .footer { color: #666; font-size: 14px; margin-top: 25px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <h1>Your Meeting is Confirmed!</h1>
            <p class="subtitle">Hi {{.Name}}, your consultation has been approved.</p>

            <div class="details">
                <p><span class="label">Date:</span> {{.Date}}</p>
                <p><span class="label">Time:</span> {{.Time}}</p>
                <p><span class="label">Duration:</span> {{.Duration}} minutes</p>
            </div>

            <p>We look forward to speaking with you. If you need to reschedule, please reply to this email or contact us at <a href="mailto:{{.ContactEmail}}">{{.ContactEmail}}</a>.</p>

            <div class="footer">
                <strong>{{.OrgName}}</strong><br>
                {{.ContactEmail}}
            </div>
        </div>
    </div>
</body>
</html>
`

const statusPageTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.OrgName}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #1f1f2e;
            min-height: 100vh;
            display: flex;
            align-items: center;
            justify-content: center;
            padding: 20px;
        }
        .card {
            background: white;
            border-radius: 16px;
            padding: 40px;
            max-width: 500px;
            text-align: center;
            box-shadow: 0 10px 40px rgba(0,0,0,0.3);
        }
        .icon {
            width: 60px;
            height: 60px;
            border-radius: 50%;
            background: {{.Background}};
            border: 2px solid {{.Border}};
            display: flex;
            align-items: center;
            justify-content: center;
            margin: 0 auto 20px;
            font-size: 24px;
            color: {{.Border}};
        }
        h1 { color: #1f1f2e; margin-bottom: 15px; font-size: 24px; }
        p { color: #666; line-height: 1.6; }
        a { color: #3b82f6; }
    </style>
</head>
<body>
    <div class="card">
        <div class="icon">{{.Icon}}</div>
        <h1>{{.Title}}</h1>
        <p>{{.Message}}</p>
    </div>
</body>
</html>
`
