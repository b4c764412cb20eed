package hub

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/mercurekit/validation"
)

// Update is a single event published to a topic. Empty ID, Type and zero
// Retry mean the field is absent.
type Update struct {
	Topic   string `json:"topic" validate:"required"`
	Data    string `json:"data"`
	Private bool   `json:"private,omitempty"`
	ID      string `json:"id,omitempty" validate:"singleline"`
	Type    string `json:"type,omitempty" validate:"singleline"`
	Retry   int    `json:"retry,omitempty" validate:"gte=0"`
}

// Validate checks the update is publishable.
func (u Update) Validate() error {
	return validation.Validate(u)
}

// NewID returns a fresh update ID.
func NewID() string {
	return "urn:uuid:" + uuid.NewString()
}

// Form encodes the update as the fields of a Mercure publish request.
func (u Update) Form() url.Values {
	form := url.Values{}
	form.Set("topic", u.Topic)
	form.Set("data", u.Data)
	if u.Private {
		form.Set("private", "on")
	}
	if u.ID != "" {
		form.Set("id", u.ID)
	}
	if u.Type != "" {
		form.Set("type", u.Type)
	}
	if u.Retry > 0 {
		form.Set("retry", strconv.Itoa(u.Retry))
	}
	return form
}

// ParseForm decodes a Mercure publish request body.
func ParseForm(form url.Values) (Update, error) {
	v := validation.New().
		Required("topic", form.Get("topic")).
		NonNegativeInt("retry", form.Get("retry")).
		SingleLine("id", form.Get("id")).
		SingleLine("type", form.Get("type"))
	if appErr := v.Validate(); appErr != nil {
		return Update{}, appErr
	}

	u := Update{
		Topic:   form.Get("topic"),
		Data:    form.Get("data"),
		Private: isTruthy(form.Get("private")),
		ID:      form.Get("id"),
		Type:    form.Get("type"),
	}
	if r := form.Get("retry"); r != "" {
		u.Retry, _ = strconv.Atoi(r)
	}
	return u, nil
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// WriteEvent writes u to w in text/event-stream format.
func WriteEvent(w io.Writer, u Update) error {
	var b strings.Builder
	if u.ID != "" {
		fmt.Fprintf(&b, "id: %s\n", u.ID)
	}
	if u.Type != "" {
		fmt.Fprintf(&b, "event: %s\n", u.Type)
	}
	if u.Retry > 0 {
		fmt.Fprintf(&b, "retry: %d\n", u.Retry)
	}
	for _, line := range strings.Split(lineBreaks.Replace(u.Data), "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
