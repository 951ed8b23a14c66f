package classify

// Label is one diagnostic class the model can emit.
type Label string

// The closed diagnostic class set, declared in the model's output order.
const (
	MildDemented     Label = "MildDemented"
	ModerateDemented Label = "ModerateDemented"
	NonDemented      Label = "NonDemented"
	VeryMildDemented Label = "VeryMildDemented"
)

// Classes returns the label set in the model's output order. Prediction
// vectors index into this slice.
func Classes() []Label {
	return []Label{MildDemented, ModerateDemented, NonDemented, VeryMildDemented}
}
