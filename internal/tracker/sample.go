package tracker

// SampleActivities returns the starter set offered by `timetrack seed`.
// Free time, Work, Food and Productivity start tracking when registered.
func SampleActivities() []Activity {
	return []Activity{
		{Name: "Free time", Color: "green", Icon: "face.smiling", Active: true},
		{Name: "Work", Color: "blue", Active: true},
		{Name: "Food", Color: "yellow", Active: true},
		{Name: "Productivity", Color: "purple", Icon: "building.columns", Active: true},
		{Name: "Groceries", Color: "red"},
		{Name: "Sleep", Color: "orange"},
	}
}
