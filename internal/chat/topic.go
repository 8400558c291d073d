package chat

// Topic is the closed set of dispatch strategies.
type Topic int

const (
	TopicUnrecognized Topic = iota
	TopicPhishingEmail
	TopicSpamCalls
	TopicGeneralAdvice
)

// ParseTopic matches labels exactly and case-sensitively.
func ParseTopic(label string) Topic {
	switch label {
	case "phishing email":
		return TopicPhishingEmail
	case "spam calls":
		return TopicSpamCalls
	case "general security advice":
		return TopicGeneralAdvice
	default:
		return TopicUnrecognized
	}
}

// Label returns the wire label, or "" for TopicUnrecognized.
func (t Topic) Label() string {
	switch t {
	case TopicPhishingEmail:
		return "phishing email"
	case TopicSpamCalls:
		return "spam calls"
	case TopicGeneralAdvice:
		return "general security advice"
	default:
		return ""
	}
}

func (t Topic) String() string {
	switch t {
	case TopicPhishingEmail:
		return "phishing_email"
	case TopicSpamCalls:
		return "spam_calls"
	case TopicGeneralAdvice:
		return "general_advice"
	default:
		return "unrecognized"
	}
}

// Classifies reports whether the topic runs the two-stage pipeline.
func (t Topic) Classifies() bool {
	return t == TopicPhishingEmail || t == TopicSpamCalls
}
