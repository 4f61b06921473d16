package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Usage example on the command line:
// > go run main.go -url=http://localhost:3000/contacts -timeout=2m
func main() {
	url := flag.String("url", "http://localhost:3000/contacts", "the URL that must answer with 200 OK")
	interval := flag.Duration("interval", 5*time.Second, "the time between two attempts")
	timeout := flag.Duration("timeout", 0, "give up after this time; 0 waits forever")
	flag.Parse()

	var totalWaitTime time.Duration
	for {
		res, err := http.Get(*url)
		if err == nil {
			res.Body.Close()
			fmt.Println(res.Status)
			if res.StatusCode == http.StatusOK {
				break
			}
		} else {
			fmt.Println(err)
		}
		if *timeout > 0 && totalWaitTime >= *timeout {
			fmt.Printf("Service not available after %s", totalWaitTime)
			fmt.Println()
			os.Exit(1)
		}
		totalWaitTime += *interval
		fmt.Printf("Waiting %s", totalWaitTime)
		fmt.Println()
		time.Sleep(*interval)
	}
}
