package main

import (
	"context"
	"fmt"

	"erp/internal/profile"
	"erp/internal/validation"
)

// addProfile creates a profile and prints its id.
func (cli *commandLine) addProfile(np profile.NewProfile) error {
	p, err := cli.profiles.Create(context.Background(), np)
	if err != nil {
		if verr, ok := validation.As(err); ok {
			return fmt.Errorf("%s: %v", verr.Error(), verr.FieldMap())
		}
		return err
	}
	fmt.Fprintf(cli.out, "profile %s created with id %s\n", p.Username, p.ID)
	return nil
}
