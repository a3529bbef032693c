package domain

// MonthCount is a per-month bucket in dashboard statistics. Month is
// formatted "YYYY-MM".
type MonthCount struct {
	Month string
	Count int
}

// ContributorStats are the read-only dashboard counts for one user.
type ContributorStats struct {
	// Recorded counts the user's audible pronunciations that are open for
	// review and carry at most one denial.
	Recorded int

	// MergedByMonth buckets the user's recordings whose owning document
	// has been merged, by the document's update month.
	MergedByMonth []MonthCount

	// Translations counts translations the user authored.
	Translations int
}
