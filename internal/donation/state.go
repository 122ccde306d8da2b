package donation

// State is where a Handler is within a submit cycle.
type State int32

const (
	Idle State = iota
	Validating
	CreatingOrder
	AwaitingWidgetResult
	VerifyingPayment
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case CreatingOrder:
		return "creating_order"
	case AwaitingWidgetResult:
		return "awaiting_widget_result"
	case VerifyingPayment:
		return "verifying_payment"
	default:
		return "unknown"
	}
}
