// Package chatbot answers help-desk questions from a fixed list of keyword
// rules. The first matching rule wins.
package chatbot

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Topic names the rule that produced a reply
type Topic string

const (
	TopicExam       Topic = "exam"
	TopicFee        Topic = "fee"
	TopicPlacement  Topic = "placement"
	TopicHostel     Topic = "hostel"
	TopicAcademics  Topic = "academics"
	TopicAttendance Topic = "attendance"
	TopicHelp       Topic = "help"
	TopicThanks     Topic = "thanks"
	TopicGreeting   Topic = "greeting"
	TopicDefault    Topic = "default"
)

// Welcome is sent when a conversation opens
const Welcome = "Hello! I'm your Tenacity ERP assistant. I can help you with information about exams, fees, placements, and hostel services. How can I assist you today?"

// Reply is the assistant answer to one message
type Reply struct {
	Topic Topic  `json:"topic"`
	Text  string `json:"reply"`
}

type rule struct {
	topic Topic
	match func(text string, words []string) bool
	reply string
}

// contains matches any keyword as a substring
func contains(keywords ...string) func(string, []string) bool {
	return func(text string, _ []string) bool {
		for _, k := range keywords {
			if strings.Contains(text, k) {
				return true
			}
		}
		return false
	}
}

// hasWord matches any keyword as a whole word
func hasWord(keywords ...string) func(string, []string) bool {
	return func(_ string, words []string) bool {
		for _, w := range words {
			for _, k := range keywords {
				if w == k {
					return true
				}
			}
		}
		return false
	}
}

var rules = []rule{
	{TopicExam, contains("exam", "test", "assessment"), `🎓 Exam Information:

• Check your exam schedule in the Student Dashboard
• View your current marks and CGPA
• Use the CGPA calculator to predict future scores
• Contact faculty for exam-related queries

Exam Helpline: +91-XXXX-EXAM (3926)
Email: exams@tenacityerp.edu`},
	{TopicFee, contains("fee", "payment", "money", "receipt"), `💳 Fee Information:

• Pay fees online through the Fee Module
• Download receipts instantly after payment
• Check fee status and payment history
• Multiple payment options available

Fee Office Hours: Mon-Fri, 9 AM - 5 PM
Contact: +91-XXXX-FEES (3337)
Email: fees@tenacityerp.edu`},
	{TopicPlacement, contains("placement", "job", "career", "internship"), `🚀 Placement & Career Services:

• Access placement portal through student dashboard
• Update your resume and academic records
• Register for campus recruitment drives
• Career counseling sessions available

Placement Cell: Mon-Fri, 10 AM - 4 PM
Contact: +91-XXXX-JOBS (5627)
Email: placements@tenacityerp.edu`},
	{TopicHostel, contains("hostel", "room", "accommodation", "mess"), `🏠 Hostel Information:

• Check room allocation in Admin Dashboard
• Submit hostel requests and complaints
• Mess menu and timings available
• Hostel fee payment through Fee Module

Hostel Office Hours: 24/7 (Emergency)
Warden Contact: +91-XXXX-HOST (4678)
Email: hostel@tenacityerp.edu`},
	{TopicAcademics, contains("marks", "grade", "cgpa", "result"), `📊 Academic Information:

• View your marks in Student Dashboard
• Use the CGPA calculator for predictions
• Download academic transcripts
• Early warning system alerts for improvement

Academic Office: Mon-Fri, 9 AM - 5 PM
Contact: +91-XXXX-ACAD (2223)
Email: academics@tenacityerp.edu`},
	{TopicAttendance, contains("attendance", "absent", "present"), `✅ Attendance Information:

• View attendance percentage in dashboard
• Minimum 75% attendance required
• Apply for attendance shortage through faculty
• Regular attendance tracking available

Student Services: Mon-Fri, 9 AM - 5 PM
Contact: +91-XXXX-ATTN (2886)`},
	{TopicHelp, contains("help", "support", "contact"), `📞 Contact Information:

Main Office: +91-XXXX-MAIN (6246)
Email: support@tenacityerp.edu
Address: Tenacity Institute of Technology
123 Education Street, Knowledge City

Office Hours: Mon-Fri, 9 AM - 6 PM
Emergency: +91-XXXX-HELP (4357)`},
	{TopicThanks, contains("thank"), `You're welcome! 😊 Is there anything else I can help you with regarding your academic journey at Tenacity ERP?`},
	{TopicGreeting, hasWord("hello", "hi", "hey"), `Hello! 👋 I'm here to help you with any questions about Tenacity ERP. You can ask me about:

• Exams and assessments
• Fee payments and receipts
• Placement and career services
• Hostel accommodations
• Academic records and CGPA

What would you like to know?`},
}

const fallback = `I understand you're asking about "%s". Here are some common topics I can help with:

🎓 Exams - Schedules, marks, CGPA
💳 Fees - Payments, receipts, status
🚀 Placements - Career services, jobs
🏠 Hostel - Room allocation, mess
📊 Academics - Grades, transcripts

Please try asking about one of these topics, or contact our support team:
Phone: +91-XXXX-HELP (4357)
Email: support@tenacityerp.edu`

// Respond picks the reply for message
func Respond(message string) Reply {
	original := strings.TrimSpace(message)
	text := strings.ToLower(original)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, r := range rules {
		if r.match(text, words) {
			return Reply{Topic: r.topic, Text: r.reply}
		}
	}
	return Reply{Topic: TopicDefault, Text: fmt.Sprintf(fallback, original)}
}

// Sender identifies who wrote a transcript entry
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one transcript entry
type Message struct {
	From  Sender    `json:"from"`
	Text  string    `json:"text"`
	Topic Topic     `json:"topic,omitempty"`
	At    time.Time `json:"at"`
}

// Conversation is the transcript of a single chat session. It is not safe
// for concurrent use; each session owns one.
type Conversation struct {
	messages []Message
	now      func() time.Time
}

// NewConversation opens a conversation with the welcome message
func NewConversation() *Conversation {
	c := &Conversation{now: time.Now}
	c.messages = append(c.messages, Message{From: SenderBot, Text: Welcome, Topic: TopicGreeting, At: c.now()})
	return c
}

// Ask records message and the reply to it. Blank messages are ignored and
// reported with ok false.
func (c *Conversation) Ask(message string) (reply Message, ok bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Message{}, false
	}
	r := Respond(message)
	c.messages = append(c.messages, Message{From: SenderUser, Text: message, At: c.now()})
	reply = Message{From: SenderBot, Text: r.Text, Topic: r.Topic, At: c.now()}
	c.messages = append(c.messages, reply)
	return reply, true
}

// Transcript returns a copy of the messages so far, oldest first
func (c *Conversation) Transcript() []Message {
	return append([]Message(nil), c.messages...)
}
