package main

import (
	"context"
	"fmt"
	"text/tabwriter"
)

func (cli *commandLine) printRoster() error {
	if err := cli.roster.Refresh(context.Background()); err != nil {
		return err
	}

	fmt.Fprintln(cli.out, "Present Students In School")
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Sr. No.\tReg Number\tName\tCheck-in Time\tCheck-out Time\tDays Attended\tAttendance Percentage\tID")
	for _, row := range cli.roster.Rows() {
		checkOut := row.CheckOut
		if !row.CheckedOut {
			checkOut = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s%%\t%s\n",
			row.SrNo, row.RollNumber, row.Name, row.CheckIn, checkOut, row.DaysAttended, row.Percentage, row.ID)
	}
	return w.Flush()
}
