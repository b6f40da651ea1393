package wamp

// CallerFeatures advertises caller-role features in HELLO.
type CallerFeatures struct {
	CallerIdentification   bool `json:"caller_identification"`
	ProgressiveCallResults bool `json:"progressive_call_results"`
	CallCanceling          bool `json:"call_canceling"`
}

// CalleeFeatures advertises callee-role features in HELLO.
type CalleeFeatures struct {
	CallerIdentification   bool `json:"caller_identification"`
	ProgressiveCallResults bool `json:"progressive_call_results"`
	CallCanceling          bool `json:"call_canceling"`
}

// PublisherFeatures advertises publisher-role features in HELLO.
type PublisherFeatures struct {
	PublisherExclusion       bool `json:"publisher_exclusion"`
	PublisherIdentification  bool `json:"publisher_identification"`
	SubscriberBlackWhiteList bool `json:"subscriber_blackwhite_listing"`
}

// SubscriberFeatures advertises subscriber-role features in HELLO.
type SubscriberFeatures struct {
	PublisherIdentification bool `json:"publisher_identification"`
}

// Role wraps a feature set under the "features" key the wire format uses.
type Role[F any] struct {
	Features F `json:"features"`
}

// ClientRoles advertises the roles and per-role feature sets a client
// announces in HELLO. A nil role is omitted entirely.
type ClientRoles struct {
	Caller     *Role[CallerFeatures]     `json:"caller,omitempty"`
	Callee     *Role[CalleeFeatures]     `json:"callee,omitempty"`
	Publisher  *Role[PublisherFeatures]  `json:"publisher,omitempty"`
	Subscriber *Role[SubscriberFeatures] `json:"subscriber,omitempty"`
}

// HelloDetails is the details payload of a HELLO message.
type HelloDetails struct {
	Agent       string      `json:"agent,omitempty"`
	Roles       ClientRoles `json:"roles"`
	AuthID      string      `json:"authid,omitempty"`
	AuthMethods []string    `json:"authmethods,omitempty"`
}

// DefaultClientRoles returns the static capability set this client announces:
// all four roles, with caller identification, progressive call results, call
// canceling, publisher exclusion and subscriber black/white listing enabled.
func DefaultClientRoles() ClientRoles {
	return ClientRoles{
		Caller: &Role[CallerFeatures]{Features: CallerFeatures{
			CallerIdentification:   true,
			ProgressiveCallResults: true,
			CallCanceling:          true,
		}},
		Callee: &Role[CalleeFeatures]{Features: CalleeFeatures{
			CallerIdentification:   true,
			ProgressiveCallResults: true,
			CallCanceling:          true,
		}},
		Publisher: &Role[PublisherFeatures]{Features: PublisherFeatures{
			PublisherExclusion:       true,
			PublisherIdentification:  true,
			SubscriberBlackWhiteList: true,
		}},
		Subscriber: &Role[SubscriberFeatures]{Features: SubscriberFeatures{
			PublisherIdentification: true,
		}},
	}
}

// WelcomeDetails is the subset of WELCOME details the session layer reads.
// Routers attach more; observers decode the full payload on demand.
type WelcomeDetails struct {
	Agent      string `json:"agent,omitempty"`
	AuthID     string `json:"authid,omitempty"`
	AuthMethod string `json:"authmethod,omitempty"`
	AuthRole   string `json:"authrole,omitempty"`
}
