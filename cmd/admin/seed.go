package main

import (
	"context"
	"fmt"
)

// seed creates the university structure and prints what is stored.
func (cli *commandLine) seed() error {
	ctx := context.Background()
	c, err := cli.org.Seed(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Created: %d Governing Bodies, %d Schools, %d Departments, %d Programs, %d Academic Sections, %d Support Cells\n",
		c.GoverningBodies, c.Schools, c.Departments, c.Programs, c.AcademicSections, c.SupportCells)

	perSchool, err := cli.org.SchoolCounts(ctx)
	if err != nil {
		return err
	}
	for _, sc := range perSchool {
		fmt.Fprintf(cli.out, "  %s: %d departments, %d programs\n", sc.School, sc.Departments, sc.Programs)
	}
	return nil
}
