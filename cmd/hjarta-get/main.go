// Command hjarta-get reads typed values out of YAML configuration files.
//
//	hjarta-get get config.yaml server:port --type int
//	hjarta-get has config.yaml server:tls
//	hjarta-get keys config.yaml database
//	hjarta-get check config.yaml server:port --type int --expr 'value > 1024'
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
