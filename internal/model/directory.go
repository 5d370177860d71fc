package model

// ClassEnrollment mirrors the `class_enrollments` table.  The directory
// endpoint resolves a student's latest enrollment and lists classmates
// enrolled in the same class, year and semester.
type ClassEnrollment struct {
	ID           uint64 // class_enrollments.id
	StudentID    uint64 // class_enrollments.student_id
	ClassName    string // class_enrollments.class_name
	AcademicYear string // class_enrollments.academic_year
	Semester     string // class_enrollments.semester
}
