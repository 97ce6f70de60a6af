// Package roster provides the outfit's hired hands: procedurally
// generated employees and the applicant pool.
package roster

import (
	"math/rand"

	"github.com/talgya/silt-road/internal/namegen"
)

// Employee is one hired hand on the outfit's payroll.
type Employee struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Age        int     `json:"age"`
	HourlyWage float64 `json:"hourly_wage"`
	Morale     float64 `json:"morale"` // -1 (mutinous) to 1 (devoted)
}

// Applicant is someone asking to be hired: an employee plus the terms
// they want.
type Applicant struct {
	Employee        Employee `json:"employee"`
	StartDelayDays  int      `json:"start_delay_days"`
	DesiredWorkdays int      `json:"desired_workdays"`
	SignOnBonus     float64  `json:"sign_on_bonus"`
}

// Roster is the set of current employees.
type Roster struct {
	Employees []Employee `json:"employees"`
}

// GenerateEmployee rolls a new hand with a wage and morale drawn from
// clamped normal distributions.
func GenerateEmployee(rng *rand.Rand) Employee {
	first, last := namegen.FullName(rng)
	return Employee{
		FirstName:  first,
		LastName:   last,
		Age:        16 + rng.Intn(65),
		HourlyWage: clampedNormal(rng, 0.17, 0.03, 0.01, 0.75),
		Morale:     clampedNormal(rng, 0.5, 0.1, -1, 1),
	}
}

// GenerateApplicant rolls a job-seeker. A shorter start delay raises the
// sign-on bonus they expect.
func GenerateApplicant(rng *rand.Rand) Applicant {
	const maxDelay = 5
	startDelay := rng.Intn(maxDelay)

	bonus := clampedNormal(rng, 7.50, 1.0, 0, 20) * (1 - float64(startDelay+1)/maxDelay) * 4
	if bonus < 0 {
		bonus = 0
	}

	return Applicant{
		Employee:        GenerateEmployee(rng),
		StartDelayDays:  startDelay,
		DesiredWorkdays: 2 + rng.Intn(4),
		SignOnBonus:     float64(int(bonus+0.5)) / 4,
	}
}

// Seed hires the outfit's starting crew of five to nine hands.
func Seed(rng *rand.Rand) *Roster {
	n := 5 + rng.Intn(5)
	r := &Roster{Employees: make([]Employee, 0, n)}
	for i := 0; i < n; i++ {
		r.Employees = append(r.Employees, GenerateEmployee(rng))
	}
	return r
}

// Hire adds an applicant's employee to the roster.
func (r *Roster) Hire(a Applicant) {
	r.Employees = append(r.Employees, a.Employee)
}

// DayLogLine returns an employee's end-of-day remark, colored by morale.
func (e Employee) DayLogLine(rng *rand.Rand) string {
	switch {
	case e.Morale > 0.25:
		return namegen.Choice(rng, []string{
			"Another day, another dime.",
			"Just another day.",
		})
	case e.Morale < -0.5:
		return namegen.Choice(rng, []string{
			"I gotta get the hell out of this job.",
			"Each day's worse than the last. See you tomorrow.",
			"Oh, yup, another day in paradise.",
		})
	default:
		return namegen.Choice(rng, []string{
			"Today was same as yesterday.",
			"What can I say. Just another day.",
			"Another day another dime. See you tomorrow.",
			"See you at the saloon?",
			"Today coulda' been a whole lot worse.",
		})
	}
}

// clampedNormal draws from N(mean, stddev) and clamps into [lo, hi].
func clampedNormal(rng *rand.Rand, mean, stddev, lo, hi float64) float64 {
	v := rng.NormFloat64()*stddev + mean
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
