// Command scheduler triggers the pricing cycle endpoint at fixed wall-clock
// times each day. It is a plain HTTP client of the server: a failed trigger is
// logged and not retried until the next scheduled tick.
package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultScheduleTimes = "00:00,12:00"

func main() {
	_ = godotenv.Load()

	targetURL := os.Getenv("SCHEDULER_TARGET_URL")
	if targetURL == "" {
		targetURL = "http://localhost:8080/api/discounts/calculate"
	}

	scheduleSpec := os.Getenv("SCHEDULE_TIMES")
	if scheduleSpec == "" {
		scheduleSpec = defaultScheduleTimes
	}
	times, err := parseScheduleTimes(scheduleSpec)
	if err != nil {
		log.Fatalf("SCHEDULE_TIMES: %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute}

	log.Printf("scheduler started: firing %v at %s", times, targetURL)
	for {
		next := nextFire(time.Now(), times)
		log.Printf("next cycle trigger at %s", next.Format(time.RFC3339))
		time.Sleep(time.Until(next))
		triggerCycle(client, targetURL)
	}
}

// triggerCycle POSTs to the calculate endpoint and logs the outcome.
func triggerCycle(client *http.Client, url string) {
	resp, err := client.Post(url, "application/json", nil)
	if err != nil {
		log.Printf("cycle trigger failed: %v", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		log.Printf("cycle trigger returned %d: %s", resp.StatusCode, string(body))
		return
	}
	log.Printf("cycle triggered: %s", string(body))
}
