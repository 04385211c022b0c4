// Package repair tracks customer repair jobs through a linear workflow.
package repair

import (
	"time"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// Status is the workflow step of a job.
type Status string

const (
	StatusReceived    Status = "Received"
	StatusUnderRepair Status = "Under Repair"
	StatusReady       Status = "Ready"
	StatusDelivered   Status = "Delivered"
)

var steps = []Status{StatusReceived, StatusUnderRepair, StatusReady, StatusDelivered}

// Next returns the step after s.
func (s Status) Next() (Status, bool) {
	for i, st := range steps[:len(steps)-1] {
		if st == s {
			return steps[i+1], true
		}
	}
	return "", false
}

// Job is a repair job.
type Job struct {
	ID                id.RepairID  `json:"id"`
	JobNo             string       `json:"job_no"`
	CustomerName      string       `json:"customer_name"`
	Phone             string       `json:"phone"`
	ProductName       string       `json:"product_name"`
	IssueDescription  string       `json:"issue_description"`
	Status            Status       `json:"status"`
	ReceivedDate      time.Time    `json:"received_date"`
	EstimatedDelivery time.Time    `json:"estimated_delivery"`
	DeliveredDate     time.Time    `json:"delivered_date"`
	Cost              types.Money  `json:"cost"`
	AdvancePayment    types.Money  `json:"advance_payment"`
	FinalPayment      types.Money  `json:"final_payment"`
	ProductWeight     types.Weight `json:"product_weight"`
	MetalType         string       `json:"metal_type,omitempty"`
	Notes             []string     `json:"notes,omitempty"`
}

// Balance is cost less everything collected so far.
func (j Job) Balance() types.Money {
	return j.Cost.Subtract(j.AdvancePayment).Subtract(j.FinalPayment)
}

// Book holds repair jobs, newest first.
type Book struct {
	Jobs []Job
}

// Clone returns a copy of b that shares no slice storage with it.
func (b Book) Clone() Book {
	return Book{Jobs: append([]Job(nil), b.Jobs...)}
}

// Get returns the job with the given id.
func (b Book) Get(rid id.RepairID) (Job, bool) {
	for _, j := range b.Jobs {
		if j.ID == rid {
			return j, true
		}
	}
	return Job{}, false
}

// Create opens a job in the Received step.
func (b *Book) Create(j Job) (Job, error) {
	if j.JobNo == "" {
		return Job{}, types.Invalid("job_no", "is required")
	}
	if j.CustomerName == "" {
		return Job{}, types.Invalid("customer_name", "is required")
	}
	if j.ReceivedDate.IsZero() {
		return Job{}, types.Invalid("received_date", "is required")
	}
	if err := types.CheckMonies(map[string]*types.Money{
		"cost":            &j.Cost,
		"advance_payment": &j.AdvancePayment,
	}); err != nil {
		return Job{}, err
	}
	if j.Cost.IsNegative() || j.AdvancePayment.IsNegative() {
		return Job{}, types.Invalid("cost", "must not be negative")
	}
	if j.ID.IsNil() {
		j.ID = id.NewRepairID()
	}
	for _, existing := range b.Jobs {
		if existing.JobNo == j.JobNo {
			return Job{}, types.Conflict("repair", "job %q already exists", j.JobNo)
		}
	}
	j.Status = StatusReceived
	j.ReceivedDate = types.Day(j.ReceivedDate)
	j.FinalPayment = types.Zero(types.DefaultCurrency)
	b.Jobs = append([]Job{j}, b.Jobs...)
	return j, nil
}

// Advance moves the job one step forward. Moving to Delivered requires the
// outstanding balance to be collected: collect must be true when the
// balance is positive, and the collected amount is returned.
func (b *Book) Advance(rid id.RepairID, collect bool, date time.Time) (Job, types.Money, error) {
	for i, j := range b.Jobs {
		if j.ID != rid {
			continue
		}
		next, ok := j.Status.Next()
		if !ok {
			return Job{}, types.Money{}, types.Conflict("repair", "job %s is already %s", j.JobNo, j.Status)
		}
		collected := types.Zero(types.DefaultCurrency)
		if next == StatusDelivered {
			balance := j.Balance()
			if balance.IsPositive() {
				if !collect {
					return Job{}, types.Money{}, types.Conflict("repair",
						"job %s has an outstanding balance of %s", j.JobNo, balance)
				}
				collected = balance
				j.FinalPayment = j.FinalPayment.Add(balance)
			}
			j.DeliveredDate = types.Day(date)
		}
		j.Status = next
		b.Jobs[i] = j
		return j, collected, nil
	}
	return Job{}, types.Money{}, types.NotFound("repair", rid.String())
}
