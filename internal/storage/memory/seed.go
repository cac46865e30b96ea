package memory

import "github.com/campus-labs/student-registry/internal/types"

// DefaultSeed returns the roster the store is seeded with when no
// seed file is configured.
func DefaultSeed() []types.NewRecord {
	return []types.NewRecord{
		seedRecord("CS1011", "Ada Lovelace", "Computer Science", 20, 3.8, "ada@campus.edu", "2023-09-01"),
		seedRecord("CS1024", "Grace Hopper", "Computer Science", 22, 3.2, "grace@campus.edu", "2023-09-01"),
		seedRecord("MA2040", "Emmy Noether", "Mathematics", 21, 2.9, "emmy@campus.edu", "2024-01-15"),
		seedRecord("PH3002", "Lise Meitner", "Physics", 23, 3.95, "lise@campus.edu", "2024-01-15"),
		seedRecord("BI4117", "Rosalind Franklin", "Biology", 19, 3.5, "rosalind@campus.edu", "2024-09-02"),
	}
}

func seedRecord(index, name, major string, age int, gpa float64, email, enrolled string) types.NewRecord {
	a := types.Int(age)
	g := types.Float(gpa)
	return types.NewRecord{
		IndexNumber:    index,
		Name:           name,
		Major:          major,
		Age:            &a,
		GPA:            &g,
		Email:          email,
		EnrollmentDate: enrolled,
	}
}
