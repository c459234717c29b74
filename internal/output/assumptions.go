package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Effects apply uniformly to every person in the target population",
	"Annual impact grows linearly: year i is inflated by 1 + i × growth rate",
	"Cumulative values are the year's annual value times elapsed years unless running-sum cumulation is selected",
	"Alzheimer's Medicare savings apply only to Medicare-eligible segments",
	"Hospital savings are allocated to Medicare in proportion to beneficiaries",
	"Scenario variants scale every effect magnitude uniformly, ignoring units",
}
