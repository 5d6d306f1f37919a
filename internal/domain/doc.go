// Package domain models the Sciensano epistat COVID-19 open data feeds and
// the arithmetic built on top of them.
//
// # Data Source
//
// Sciensano publishes one JSON array per topic at
// https://epistat.sciensano.be/Data/. Each element is a flat object, one per
// date and region (and, for cases, per age group and sex). The feeds are
// served as ISO-8859-1 text so Walloon and Flemish region names survive.
//
// Fields used here:
//
//	COVID19BE_HOSP.json          DATE, NEW_IN, TOTAL_IN, TOTAL_IN_ICU
//	COVID19BE_tests.json         DATE, TESTS_ALL
//	COVID19BE_CASES_AGESEX.json  DATE (sometimes absent), CASES
//
// DATE is "YYYY-MM-DD". Case rows without a DATE are cases whose date is
// unknown; they are skipped.
//
// # Daily Series
//
// [Aggregate] folds records into one point per distinct date, in the order
// the dates are first seen. Points carry the ISO date as grouping key and a
// "MM-DD" label for chart axes. Same-date records do not have to be
// adjacent.
//
// # Saturation
//
// [DaysToSaturation] extrapolates the day-over-day growth of TOTAL_IN
// (patients currently in hospital) at a constant rate until it reaches the
// available bed capacity:
//
//	rate = (today - yesterday) / yesterday
//	days = log(beds / today) / log(1 + rate)
//
// No change, or an empty hospital, is reported as 0 days.
package domain
