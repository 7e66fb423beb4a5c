package main

func (cli *commandLine) runServer(args []string) error {
	fs := cli.newFlagSet("serve")
	addr := fs.String("addr", cli.conf.Server.Host, "Address to listen on.")
	if err := parse(fs, args); err != nil {
		return err
	}
	return cli.serve(*addr)
}
