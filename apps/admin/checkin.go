package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) checkIn(rollNumber, name string) error {
	rec, err := cli.svc.CheckIn(context.Background(), rollNumber, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s (%s) checked-in at %s [id: %s]\n", rec.Data.Name, rec.Data.RollNumber, rec.Data.CheckIn, rec.ID)
	return nil
}
