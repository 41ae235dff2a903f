package mail

import "strings"

// SubjectScriptGenerated is the subject line of every script notification.
const SubjectScriptGenerated = "Movie Script Generated"

// The fixed paragraphs of the script notification, in sending order.
// These are product copy; do not reword them.
const (
	introParagraph = "Thanks for assisting us at Bookscribs.io to improve our algorithms and your user experience." +
		"\n" +
		"Please feel free to generate as many scripts as possible periodically to see how the system improves."

	visionParagraph = "At Bookscribs.io, our first goal is to generate a standardized " +
		"screenplay structure, then iterate to produce amazing stories that will evolve into " +
		"award-winning and highly successful film scripts. " +
		"\n\nBelow is the initial development of our vision.\n\n" +
		"Please note: Your generated screenplay will contain errors, laughable moments, " +
		"weird characters, strange ideas; and, even diverse storylines unlike what you've probably imagined. " +
		"That's okay; with your help, we will improve radically."

	closingLine = "Thank you for your contribution to Bookscribs.io - Let's rewrite your stories for the movie screens!"
)

// BuildScriptNotificationBody assembles the notification body for a
// processed submission. It is a pure function of the submitted premise
// and the (never empty) generated script: intro, the literal submission,
// the product-vision paragraph with its disclaimer, the literal script,
// and the closing line, in that fixed order.
func BuildScriptNotificationBody(premise, script string) string {
	var b strings.Builder
	b.WriteString(introParagraph)
	b.WriteString("\n\n")
	b.WriteString("Your Story Submission:\n")
	b.WriteString(premise)
	b.WriteString("\n\n")
	b.WriteString(visionParagraph)
	b.WriteString("\n\n")
	b.WriteString("Your Generated Script:\n")
	b.WriteString(script)
	b.WriteString("\n\n")
	b.WriteString(closingLine)
	return b.String()
}

// NewScriptNotification builds the complete outbound message for one
// submission: addressed from the configured sender identity to the
// submitter, bcc to the administrative recipient.
func NewScriptNotification(from, to, bcc, premise, script string) Message {
	return Message{
		From:    from,
		To:      to,
		Bcc:     bcc,
		Subject: SubjectScriptGenerated,
		Body:    BuildScriptNotificationBody(premise, script),
	}
}
