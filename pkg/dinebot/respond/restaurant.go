package respond

import (
	"regexp"
)

// Hours is the opening schedule shown for hours questions.
type Hours struct {
	Weekday string `yaml:"weekday" json:"weekday"`
	Weekend string `yaml:"weekend" json:"weekend"`
	Closed  string `yaml:"closed" json:"closed"`
}

// Restaurant is the static profile used for restaurant_info replies.
type Restaurant struct {
	Name       string   `yaml:"name" json:"name"`
	Address    string   `yaml:"address" json:"address"`
	Phone      string   `yaml:"phone" json:"phone"`
	Email      string   `yaml:"email" json:"email"`
	Hours      Hours    `yaml:"opening_hours" json:"opening_hours"`
	Cuisines   []string `yaml:"cuisine_types" json:"cuisine_types,omitempty"`
	Seating    int      `yaml:"seating_capacity" json:"seating_capacity,omitempty"`
	Facilities []string `yaml:"facilities" json:"facilities,omitempty"`
}

// Topic is the part of the restaurant profile a question asks about.
type Topic string

const (
	TopicHours   Topic = "hours"
	TopicAddress Topic = "address"
	TopicContact Topic = "contact"
	TopicGeneral Topic = "general"
)

var topicPatterns = []struct {
	topic   Topic
	pattern *regexp.Regexp
}{
	{TopicHours, regexp.MustCompile(`\b(?:timings?|hours|open|opening|close|closing|when)\b`)},
	{TopicAddress, regexp.MustCompile(`\b(?:address|location|located|where|situated|directions?)\b`)},
	{TopicContact, regexp.MustCompile(`\b(?:contact|phone|email|call|number|reach)\b`)},
}

// DetectTopic picks the first matching topic for normalized text, falling
// back to TopicGeneral.
func DetectTopic(text string) Topic {
	for _, tp := range topicPatterns {
		if tp.pattern.MatchString(text) {
			return tp.topic
		}
	}
	return TopicGeneral
}
