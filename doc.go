/*
Package tabular holds small column-oriented data tables and a
split-apply-combine aggregator for them.

A Table is an ordered set of equal-length, uniquely named Columns.
Each Column has one Kind (numeric, text, boolean, categorical or
timestamp) and a mask of missing values.  Tables are usually read from
CSV files with a CSVReader, which infers the type of each column.

Aggregate partitions the rows of a table by the values of one or more
grouping columns and applies a Reducer to the values of a target
column within each partition:

	res, err := tabular.Aggregate(tbl, "weight", []string{"male"}, tabular.Mean, true)
	w, ok := res.Get(1.0)

Only key combinations that occur in the table appear in the result.
Rows with a missing grouping value are left out unless
Options.MissingKeys is KeepMissingKeys.  The per-group reductions can
run on several goroutines by setting Options.Executor to a Parallel
executor.

The package also provides the supporting operations commonly used
before and after aggregation: Factor for categorical recoding, text
case conversion, row and column subsetting, Merge for joins, and
WriteCSV and WriteParquet for output.
*/
package tabular
