package notify

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}} – {{.Date}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 720px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #463737 0%, #37393b 100%);
      color: #ffffff;
    }

    .title {
      font-size: 22px;
      font-weight: 700;
      letter-spacing: 0.02em;
      margin-bottom: 4px;
    }

    .subtitle {
      font-size: 14px;
      opacity: 0.9;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
    }

    .section-title {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin-bottom: 12px;
    }

    table {
      border-collapse: collapse;
      width: 100%;
      font-size: 14px;
    }

    th, td {
      border: 1px solid #e5e7eb;
      padding: 10px 12px;
      text-align: left;
    }

    th {
      background-color: #4caf50;
      color: #ffffff;
      font-weight: 600;
    }

    tr:nth-child(even) td {
      background-color: #f9fafb;
    }

    .positive {
      color: #15803d;
      font-weight: 700;
    }

    .negative {
      color: #b91c1c;
      font-weight: 700;
    }

    .flat {
      color: #6b7280;
    }

    .summary-list {
      margin: 0;
      padding-left: 20px;
      font-size: 14px;
    }

    .summary-list li {
      margin-bottom: 8px;
      padding-left: 4px;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="title">{{.Title}}</div>
      <div class="subtitle">{{.Window}}</div>
      <div class="subtitle">Date: {{.Date}}</div>
    </div>

    <div class="section">
      <div class="section-title">Largest Moves</div>
      <table>
        <thead>
          <tr>
            <th>Ticker</th>
            <th>Open Price</th>
            <th>10 AM Price</th>
            <th>Change ($)</th>
            <th>Change (%)</th>
          </tr>
        </thead>
        <tbody>
          {{range .Rows}}
          <tr class="row-{{.Class}}">
            <td><strong>{{.Ticker}}</strong></td>
            <td>{{.Open}}</td>
            <td>{{.WindowClose}}</td>
            <td class="{{.Class}}">{{.Change}}</td>
            <td class="{{.Class}}">{{.PercentChange}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    </div>

    {{if .Commentary}}
      {{if .Commentary.Summary}}
      <div class="section">
        <div class="section-title">AI Commentary</div>
        <ul class="summary-list">
          {{range .Commentary.Summary}}
          <li>{{.}}</li>
          {{end}}
        </ul>
      </div>
      {{end}}
    {{end}}

    <div class="footer">
      Generated by movers
    </div>
  </div>
</body>
</html>`
