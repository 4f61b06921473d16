package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gitlab.com/dirk.krummacker/contacts-store/pkg/model"
)

var serverURL = "http://localhost:3000"

// Usage example on the command line:
// > go run main.go -url=http://localhost:3000
//
// The client deletes all contacts of the service after each round.
func main() {
	flag.StringVar(&serverURL, "url", serverURL, "the base URL of the contacts service")
	flag.Parse()

	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	sizes := []int{100, 500, 1000, 5000}
	jsonBody := []byte(`{
		"name": "Marcus Antonius",
		"subject": "Veni, vidi, vici"
	}`)
	for _, loops := range sizes {
		fmt.Printf("%10d", loops)
		{
			// POST requests
			var duration int64
			for i := 0; i < loops; i++ {
				body, contentType := newContactForm()
				_, d := sendRequest(http.MethodPost, serverURL+"/contacts", body, contentType)
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		ids := findAllIDs()
		{
			// PUT requests
			f := func(id string) int64 {
				return sendIDRequest(id, http.MethodPut, bytes.NewReader(jsonBody), "application/json")
			}
			callInLoop(ids, f)
		}
		{
			// GET requests
			f := func(id string) int64 {
				return sendIDRequest(id, http.MethodGet, nil, "")
			}
			callInLoop(ids, f)
		}
		{
			// DELETE requests
			f := func(id string) int64 {
				return sendIDRequest(id, http.MethodDelete, nil, "")
			}
			callInLoop(ids, f)
		}
		sendRequest(http.MethodDelete, serverURL+"/contacts", strings.NewReader("all=true"),
			"application/x-www-form-urlencoded")
		fmt.Println()
	}
}

func callInLoop(ids []string, f func(id string) int64) {
	shuffled := make([]string, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	var duration int64
	for _, id := range shuffled {
		duration += f(id)
	}
	fmt.Printf("%10d", duration/int64(max(len(shuffled), 1)*1000))
}

// newContactForm returns a multipart form for a contact with a unique email.
func newContactForm() (io.Reader, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("email", uuid.NewString()+"@example.com")
	writer.WriteField("name", "Marcus Antonius")
	writer.WriteField("subject", "Alea iacta est")
	writer.Close()
	return body, writer.FormDataContentType()
}

func findAllIDs() []string {
	resBody, _ := sendRequest(http.MethodGet, serverURL+"/contacts", nil, "")
	var contacts []model.Contact
	err := json.Unmarshal(resBody, &contacts)
	if err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	ids := make([]string, 0, len(contacts))
	for _, contact := range contacts {
		ids = append(ids, contact.Id)
	}
	return ids
}

func sendIDRequest(id string, method string, bodyReader io.Reader, contentType string) int64 {
	_, duration := sendRequest(method, serverURL+"/contacts/"+id, bodyReader, contentType)
	return duration
}

func sendRequest(method string, requestURL string, bodyReader io.Reader, contentType string) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	after := time.Now().UnixNano()
	return resBody, after - before
}
