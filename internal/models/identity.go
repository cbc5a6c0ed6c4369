package models

// Identity is an aspirational label a user groups habits under, e.g.
// "🧗 I'm a great climber". The label may carry a leading emoji.
type Identity struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
