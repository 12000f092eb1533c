package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond_Topics(t *testing.T) {
	tests := []struct {
		message string
		want    Topic
	}{
		{"When is the next EXAM?", TopicExam},
		{"how do I pay my fee", TopicFee},
		{"Any internship openings?", TopicPlacement},
		{"Which room am I in", TopicHostel},
		{"show my CGPA", TopicAcademics},
		{"I was absent yesterday", TopicAttendance},
		{"I need support", TopicHelp},
		{"thanks a lot", TopicThanks},
		{"Hi!", TopicGreeting},
		{"hey there", TopicGreeting},
		{"what is this", TopicDefault},
		{"", TopicDefault},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Respond(tt.message).Topic)
		})
	}
}

func TestRespond_FirstMatchWins(t *testing.T) {
	// exam rule precedes fee rule
	assert.Equal(t, TopicExam, Respond("exam fee payment").Topic)
	// hostel rule precedes greeting
	assert.Equal(t, TopicHostel, Respond("hello, is a room free?").Topic)
}

func TestRespond_DefaultQuotesInput(t *testing.T) {
	r := Respond("  Library timings  ")
	assert.Equal(t, TopicDefault, r.Topic)
	assert.Contains(t, r.Text, `asking about "Library timings"`)
}

func TestConversation(t *testing.T) {
	c := NewConversation()
	require.Len(t, c.Transcript(), 1)
	assert.Equal(t, Welcome, c.Transcript()[0].Text)

	_, ok := c.Ask("   ")
	assert.False(t, ok)

	reply, ok := c.Ask("fee receipt")
	require.True(t, ok)
	assert.Equal(t, SenderBot, reply.From)
	assert.Equal(t, TopicFee, reply.Topic)

	transcript := c.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, SenderUser, transcript[1].From)
	assert.Equal(t, "fee receipt", transcript[1].Text)

	transcript[0].Text = "changed"
	assert.Equal(t, Welcome, c.Transcript()[0].Text)
}
