package repository

import "fmt"

func errNoRepresentation(table string) error {
	return fmt.Errorf("store returned no representation for insert into %s", table)
}
