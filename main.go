// Command emploitogo-crawler scrapes job postings from emploitogo.info
// and maintains a deduplicated, normalized JSON dataset.
package main

import "github.com/tchluc/emploitogo-crawler/cmd"

func main() {
	cmd.Execute()
}
