package ai

import "fmt"

// The response format of each operation is only a convention enforced by
// prompt wording, so these templates are pinned by tests against exact
// example outputs. Changing any wording here risks silent format drift.

func buildTimezonePrompt(location string) string {
	return fmt.Sprintf(`For the location '%s', provide the current local time in 'YYYY-MM-DDTHH:mm:ss' format, the official IANA timezone name (e.g., 'America/New_York'), the current UTC offset (e.g., '+01:00' or '-07:00'), whether Daylight Saving Time is currently active (true/false), a corrected or more specific location name, and a brief note about the next DST change (e.g., "DST ends on Nov 5, 2024" or "DST starts on Mar 10, 2024").
If the location is ambiguous (e.g., 'Springfield'), respond ONLY with a line starting with 'AMBIGUOUS:' followed by a pipe-separated list of specific locations (e.g., 'AMBIGUOUS: Springfield, Illinois, USA | Springfield, Massachusetts, USA').
Format a successful response as a simple key-value string, with each key-value pair on a new line, like this:
Time: ...
Timezone: ...
Offset: ...
DST: ...
Location: ...
DST Info: ...
`, location)
}

func buildConversionPrompt(dateTime, fromZone, toZone string) string {
	return fmt.Sprintf(`Convert the date and time '%s' from the '%s' timezone to the '%s' timezone.
Provide a detailed explanation of the conversion, including the resulting timezone name (e.g., EDT) and any DST considerations.
Your response MUST be formatted as follows:
1. The first line must contain ONLY the converted date and time in 'YYYY-MM-DD HH:mm:ss' format.
2. Subsequent lines should contain the detailed explanation.

Example response:
2025-09-14 10:48:00
The date and time '2025-09-14T14:48' from the 'UTC' timezone converts to '2025-09-14 10:48:00' in the 'America/New_York' timezone. In September 2025, the 'America/New_York' timezone observes Eastern Daylight Time (EDT), which has an offset of UTC-4 hours.`, dateTime, fromZone, toZone)
}

func buildDelayPrompt(reminderDateTime, zone string) string {
	return fmt.Sprintf(`Calculate the number of milliseconds from right now until '%s' in the '%s' timezone. Provide only the number of milliseconds as an integer.`, reminderDateTime, zone)
}

func buildReminderEmailPrompt(message, timezone string) string {
	return fmt.Sprintf(`Generate a friendly and professional HTML email for a reminder.
The reminder is for: "%s"
The reminder's timezone context is: "%s"

Your response MUST be formatted as follows, with "---" as a separator:
1. The first line must be the email subject.
2. The remaining lines must be the HTML body of the email.

Example:
Reminder: Team Meeting
---
<!DOCTYPE html>
<html>
<body>
  <h1>Just a friendly reminder!</h1>
  <p>This is a reminder for your scheduled event:</p>
  <p><strong>%s</strong></p>
  <p><small>This reminder was set for the %s timezone.</small></p>
</body>
</html>
`, message, timezone, message, timezone)
}

func buildAnalysisPrompt(content string) string {
	return fmt.Sprintf(`Analyze the following text. Provide a concise summary (2-3 sentences) and a one-word sentiment analysis (Positive, Negative, or Neutral).
Format your response exactly like this:
SUMMARY: [Your summary here]
SENTIMENT: [Your sentiment here]
---
TEXT TO ANALYZE:
%s
`, content)
}

func buildAnalysisEmailPrompt(summary, sentiment, filename string) string {
	return fmt.Sprintf(`Generate a professional HTML email to a colleague summarizing the analysis of a document.
The document's name is: "%s"
The analysis summary is: "%s"
The overall sentiment was: "%s"

Your response MUST be formatted as follows, with "---" as a separator:
1. The first line must be the email subject.
2. The remaining lines must be the HTML body of the email.

Make the email friendly, clear, and professional.
`, filename, summary, sentiment)
}
