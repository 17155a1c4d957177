package domain

import "time"

const DefaultApologyMessage = "Sorry I am driving. Call me again if it's an emergency."

type Decision string

const (
	DecisionAllow  Decision = "allow"
	DecisionReject Decision = "reject"
)

type Reason string

const (
	ReasonMonitoringOff     Reason = "monitoring_off"
	ReasonNotDriving        Reason = "not_driving"
	ReasonEmergencyCallback Reason = "emergency_callback"
	ReasonScreened          Reason = "screened"
)

type EffectKind string

const (
	EffectSendApology     EffectKind = "send_apology"
	EffectRecordRejection EffectKind = "record_rejection"
)

type Effect struct {
	Kind    EffectKind `json:"kind"`
	Applied bool       `json:"applied"`
	Error   string     `json:"error,omitempty"`
}

type Verdict struct {
	ID       string    `json:"id"`
	CallerID string    `json:"caller_id"`
	At       time.Time `json:"at"`
	Decision Decision  `json:"decision"`
	Reason   Reason    `json:"reason"`
	// Screened calls stay visible to the user in the call log and notifications.
	SkipCallLog      bool     `json:"skip_call_log"`
	SkipNotification bool     `json:"skip_notification"`
	Effects          []Effect `json:"effects,omitempty"`
}

func (v Verdict) Allowed() bool {
	return v.Decision == DecisionAllow
}

func (v Verdict) Effect(kind EffectKind) (Effect, bool) {
	for _, effect := range v.Effects {
		if effect.Kind == kind {
			return effect, true
		}
	}

	return Effect{}, false
}
