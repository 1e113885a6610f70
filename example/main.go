// Demo program showing multi-source option resolution.
//
// Try:
//
//	go run . --host example.com
//	MYAPP_PORT=9090 go run .
//	go run . --config myapp.conf
package main

import (
	"fmt"
	"log"
	"os"

	configargparse "github.com/vonclites/ConfigArgParse"
)

func main() {
	p := configargparse.New("myapp")

	host := p.String("host", "H", "localhost", "MYAPP_HOST", "server host")
	port := p.Int("port", "p", 8080, "MYAPP_PORT", "server port")
	verbose := p.Bool("verbose", "v", false, "MYAPP_VERBOSE", "verbose output")
	fruit := p.StringSlice("fruit", "", nil, "", "fruits to buy")
	p.ConfigFileFlag("config", "c", "MYAPP_CONFIG", "config file path")

	p.DefaultPaths = configargparse.DefaultConfigPaths("myapp")
	p.OnUnknownKey = configargparse.UnknownKeyWarn

	ledger, err := p.Parse(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("host=%s port=%d verbose=%t fruit=%v\n", *host, *port, *verbose, *fruit)
	fmt.Println(ledger.Report())
}
