package main

import (
	"context"
)

func (cli *commandLine) checkOut(id, name string) error {
	ctx := context.Background()
	if name == "" {
		if rec, err := cli.svc.GetByID(ctx, id); err == nil {
			name = rec.Data.Name
		} else {
			name = id
		}
	}

	err := cli.roster.Checkout(ctx, id, name)
	cli.printAlert(cli.alerts.Current())
	return err
}
