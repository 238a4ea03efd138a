package services

import (
	"fmt"
	"time"
)

// WelcomeSubject is the confirmation email subject line.
const WelcomeSubject = "You're on the Context Graph waitlist!"

// buildWelcomeHTML renders the waitlist confirmation email body.
func buildWelcomeHTML(position int) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
  </head>
  <body style="margin: 0; padding: 0; background-color: #0a0a0a; font-family: system-ui, -apple-system, sans-serif;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #0a0a0a; padding: 40px 20px;">
      <tr>
        <td align="center">
          <table width="600" cellpadding="0" cellspacing="0" style="max-width: 600px;">
            <tr>
              <td align="center" style="padding-bottom: 30px;">
                <div style="font-size: 24px; font-weight: bold; color: #fafafa;">
                  <span style="color: #fafafa;">Context</span><span style="color: #f97316;">Graph</span>
                </div>
              </td>
            </tr>
            <tr>
              <td style="background-color: #171717; border-radius: 16px; padding: 40px; border: 1px solid #262626;">
                <h1 style="color: #fafafa; font-size: 28px; margin: 0 0 20px 0; text-align: center;">
                  You're In! &#127881;
                </h1>
                <p style="color: #a1a1aa; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0; text-align: center;">
                  Thank you for joining the Context Graph waitlist. You're now part of an exclusive group of pioneers shaping the future of AI decision-making.
                </p>
                <div style="background-color: #0a0a0a; border-radius: 12px; padding: 24px; margin: 24px 0; text-align: center; border: 1px solid #f97316;">
                  <p style="color: #f97316; font-size: 14px; margin: 0 0 8px 0; text-transform: uppercase; letter-spacing: 1px;">
                    Your Waitlist Position
                  </p>
                  <p style="color: #fafafa; font-size: 48px; font-weight: bold; margin: 0;">
                    #%d
                  </p>
                </div>
                <h2 style="color: #fafafa; font-size: 20px; margin: 30px 0 15px 0;">
                  What's Next?
                </h2>
                <ul style="color: #a1a1aa; font-size: 14px; line-height: 1.8; padding-left: 20px; margin: 0;">
                  <li>We'll notify you as soon as the marketplace launches</li>
                  <li>Early members get exclusive access to beta features</li>
                  <li>You'll have the opportunity to become a founding contributor</li>
                </ul>
                <p style="color: #a1a1aa; font-size: 14px; line-height: 1.6; margin: 30px 0 0 0; text-align: center;">
                  Have questions? Reply to this email or reach us at <a href="mailto:hello@daydayup.co" style="color: #f97316;">hello@daydayup.co</a>
                </p>
              </td>
            </tr>
            <tr>
              <td style="padding-top: 30px; text-align: center;">
                <p style="color: #525252; font-size: 12px; margin: 0;">
                  &copy; %d contextgraph.tech. All rights reserved.
                </p>
                <p style="color: #525252; font-size: 12px; margin: 10px 0 0 0;">
                  The marketplace for AI decision traces.
                </p>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>`, position, time.Now().Year())
}
