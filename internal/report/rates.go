package report

// Rates are percentages of a workflow's (or the whole run's) jobs.
type Rates struct {
	Completion float64 `json:"completion" yaml:"completion"`
	Success    float64 `json:"success" yaml:"success"`
	Failure    float64 `json:"failure" yaml:"failure"`
}

// ComputeRates derives completion, success and failure percentages against
// jobs. ok is false when jobs is not positive: zero jobs carries no rate at
// all, which is a different claim from a 0% rate.
func ComputeRates(jobs, succeeded, problems int64) (rates Rates, ok bool) {
	if jobs <= 0 {
		return Rates{}, false
	}
	denom := float64(jobs)
	return Rates{
		Completion: float64(succeeded+problems) * 100 / denom,
		Success:    float64(succeeded) * 100 / denom,
		Failure:    float64(problems) * 100 / denom,
	}, true
}

// RatesFor is ComputeRates returning nil for the no-data case.
func RatesFor(jobs, succeeded, problems int64) *Rates {
	r, ok := ComputeRates(jobs, succeeded, problems)
	if !ok {
		return nil
	}
	return &r
}
