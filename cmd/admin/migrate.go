package main

func (cli *commandLine) migrate(args []string) error {
	return migrateFunc(cli.db, cli.driver, args[0], args[1:]...)
}
