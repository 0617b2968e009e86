package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// Email subjects for the two transactional messages the app sends.
const (
	DailyReminderSubject = "🌟 Your Daily Practice Reminder"
	WelcomeSubject       = "🎉 Welcome to Your Daily Practice Portal"
)

var dailyReminderTmpl = template.Must(template.New("daily_reminder").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Daily Practice Reminder</title>
  <style>
    body { margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); }
    .container { max-width: 600px; margin: 40px auto; background: white; border-radius: 20px; overflow: hidden; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px 30px; text-align: center; color: white; }
    .logo { font-size: 32px; font-weight: bold; }
    .content { padding: 40px 30px; }
    .greeting { font-size: 24px; color: #333; margin-bottom: 20px; font-weight: 600; }
    .message { font-size: 16px; line-height: 1.6; color: #666; margin-bottom: 30px; }
    .cta-container { text-align: center; margin: 40px 0; }
    .cta-button { display: inline-block; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; text-decoration: none; padding: 16px 32px; border-radius: 50px; font-weight: 600; margin: 10px; }
    .skip-button { background: linear-gradient(135deg, #f093fb 0%, #f5576c 100%); }
    .footer { background: #f8f9fa; padding: 30px; text-align: center; font-size: 14px; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="logo">🌟 Daily Practice Portal</div>
    </div>
    <div class="content">
      <div class="greeting">Hello {{.UserName}}! 👋</div>
      <div class="message">
        It's time for your daily practice session! Consistent learning is the key to mastering any subject.
        Today is another opportunity to strengthen your knowledge and build confidence.
      </div>
      <div class="cta-container">
        <a href="{{.TakeTestURL}}" class="cta-button">🚀 Start Today's Practice</a>
        <br>
        <a href="{{.SkipURL}}" class="cta-button skip-button">😴 Skip Today</a>
      </div>
      <div class="message">
        <strong>Why daily practice matters:</strong><br>
        • Builds long-term retention<br>
        • Improves problem-solving skills<br>
        • Boosts confidence for exams<br>
        • Creates a winning habit
      </div>
    </div>
    <div class="footer">
      Keep up the great work! Every day you practice, you're one step closer to your goals.
    </div>
  </div>
</body>
</html>
`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Welcome</title>
  <style>
    body { margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); }
    .container { max-width: 600px; margin: 40px auto; background: white; border-radius: 20px; overflow: hidden; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 50px 30px; text-align: center; color: white; }
    .logo { font-size: 36px; font-weight: bold; }
    .content { padding: 50px 30px; }
    .greeting { font-size: 28px; color: #333; margin-bottom: 25px; font-weight: 600; text-align: center; }
    .message { font-size: 16px; line-height: 1.7; color: #666; margin-bottom: 35px; text-align: center; }
    .cta-container { text-align: center; margin: 40px 0; }
    .cta-button { display: inline-block; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; text-decoration: none; padding: 18px 40px; border-radius: 50px; font-weight: 600; font-size: 18px; }
    .footer { background: #f8f9fa; padding: 30px; text-align: center; font-size: 14px; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="logo">🌟 Daily Practice Portal</div>
    </div>
    <div class="content">
      <div class="greeting">Welcome, {{.UserName}}! 🎉</div>
      <div class="message">
        Thank you for joining your AI-powered Daily Practice Portal!
        We're excited to help you achieve your learning goals through consistent practice and intelligent test generation.
      </div>
      <div class="cta-container">
        <a href="{{.AppURL}}" class="cta-button">✨ Start Learning</a>
      </div>
      <div class="message">
        <strong>What's next?</strong><br>
        1. Upload your study materials or create your first test<br>
        2. Set up your daily practice preferences<br>
        3. Start your journey to academic excellence!
      </div>
    </div>
    <div class="footer">
      Ready to transform your learning experience? Let's get started! 🚀
    </div>
  </div>
</body>
</html>
`))

type dailyReminderData struct {
	UserName    string
	TakeTestURL string
	SkipURL     string
}

type welcomeData struct {
	UserName string
	AppURL   string
}

// DailyReminderEmail renders the daily reminder message for a user.
func DailyReminderEmail(to, userName, appBaseURL, userID string) (Message, error) {
	if userName == "" {
		userName = "there"
	}
	data := dailyReminderData{
		UserName:    userName,
		TakeTestURL: appBaseURL + "/generate",
		SkipURL:     fmt.Sprintf("%s/skip-today?user=%s", appBaseURL, userID),
	}

	var buf bytes.Buffer
	if err := dailyReminderTmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render daily reminder: %w", err)
	}

	return Message{
		To:      to,
		ToName:  userName,
		Subject: DailyReminderSubject,
		Text:    fmt.Sprintf("Hello %s! It's time for your daily practice session. Start now: %s — or skip today: %s", userName, data.TakeTestURL, data.SkipURL),
		HTML:    buf.String(),
	}, nil
}

// WelcomeEmail renders the first-sign-in welcome message.
func WelcomeEmail(to, userName, appBaseURL string) (Message, error) {
	if userName == "" {
		userName = "there"
	}
	data := welcomeData{
		UserName: userName,
		AppURL:   appBaseURL,
	}

	var buf bytes.Buffer
	if err := welcomeTmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render welcome: %w", err)
	}

	return Message{
		To:      to,
		ToName:  userName,
		Subject: WelcomeSubject,
		Text:    fmt.Sprintf("Welcome %s! Your AI-powered practice portal is ready: %s", userName, appBaseURL),
		HTML:    buf.String(),
	}, nil
}
