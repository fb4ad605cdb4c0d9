package planner

// Conflict represents a slot that cannot be added.
type Conflict struct {
	// Slot is the candidate that was rejected
	Slot string `json:"slot"`

	// Blocker is the occupied slot responsible (the slot itself if it is taken)
	Blocker string `json:"blocker"`

	// Reason is a human-readable explanation of the conflict
	Reason string `json:"reason"`
}

func (c Conflict) Error() string {
	return c.Reason
}

// IntentKind names an edit flow.
type IntentKind string

// Intent kind constants
const (
	IntentAddCourse   IntentKind = "add_course"
	IntentEditCourse  IntentKind = "edit_course"
	IntentEditFaculty IntentKind = "edit_faculty"
	IntentAddLab      IntentKind = "add_lab"
	IntentEditLab     IntentKind = "edit_lab"
)

// EditIntent identifies which flow a draft belongs to and which course it
// targets. It is one of AddCourse, EditCourse, EditFaculty, AddLab or EditLab.
type EditIntent interface {
	Kind() IntentKind
	isEditIntent()
}

// AddCourse stages the slots of a new course.
type AddCourse struct{}

// EditCourse stages new slots for an existing course.
type EditCourse struct {
	CourseID string
}

// EditFaculty stages one faculty's lab slots on a lab course.
type EditFaculty struct {
	CourseID string
	Faculty  string
}

// AddLab stages the slots of a new lab companion for a theory course.
type AddLab struct {
	TheoryID string
}

// EditLab stages new slots for an existing lab course.
type EditLab struct {
	LabID string
}

func (AddCourse) Kind() IntentKind   { return IntentAddCourse }
func (EditCourse) Kind() IntentKind  { return IntentEditCourse }
func (EditFaculty) Kind() IntentKind { return IntentEditFaculty }
func (AddLab) Kind() IntentKind      { return IntentAddLab }
func (EditLab) Kind() IntentKind     { return IntentEditLab }

func (AddCourse) isEditIntent()   {}
func (EditCourse) isEditIntent()  {}
func (EditFaculty) isEditIntent() {}
func (AddLab) isEditIntent()      {}
func (EditLab) isEditIntent()     {}
