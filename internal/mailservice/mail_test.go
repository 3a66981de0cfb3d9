package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	testCases := []struct {
		name      string
		replyTo   string
		parseErr  error
		dialErr   error
		expectErr bool
	}{
		{name: "success"},
		{name: "with reply-to", replyTo: "jane@example.com"},
		{name: "template error", parseErr: errors.New("bad template"), expectErr: true},
		{name: "dial error", dialErr: errors.New("connection refused"), expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockParser := new(MockTemplate)
			mockDialer := new(MockDialer)

			mailer := Mail{
				dialer: mockDialer,
				parser: mockParser,
				sender: "sender@example.com",
			}

			if tc.parseErr != nil {
				mockParser.On("ParseTemplate", "template.html", mock.Anything).Return(nil, nil, nil, tc.parseErr)
			} else {
				mockParser.On("ParseTemplate", "template.html", mock.Anything).Return(
					bytes.NewBufferString("Test Subject"),
					bytes.NewBufferString("Test Plain Body"),
					bytes.NewBufferString("Test HTML Body"),
					nil)
				mockDialer.On("DialAndSend", mock.MatchedBy(func(msgs []*mail.Message) bool {
					if len(msgs) != 1 {
						return false
					}
					msg := msgs[0]
					if tc.replyTo != "" && !assert.Equal(t, []string{tc.replyTo}, msg.GetHeader("Reply-To")) {
						return false
					}
					return assert.Equal(t, []string{"test@example.com"}, msg.GetHeader("To")) &&
						assert.Equal(t, []string{"Test Subject"}, msg.GetHeader("Subject"))
				})).Return(tc.dialErr)
			}

			err := mailer.send(&email{recipient: "test@example.com", replyTo: tc.replyTo, template: "template.html"})
			assert.Equal(t, tc.expectErr, err != nil)

			mockParser.AssertExpectations(t)
			mockDialer.AssertExpectations(t)
		})
	}
}
