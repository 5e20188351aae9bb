// storeadmin CLI - admin client for a store REST backend
package main

import "github.com/getmockd/storeadmin/pkg/cli"

func main() {
	cli.Execute()
}
