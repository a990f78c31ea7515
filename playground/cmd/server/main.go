package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const PORT = 3000

// prices random-walks per URL so the client's trend indicator flips.
var (
	mu     sync.Mutex
	prices = map[string]float64{}
)

func quoteFor(url string) (float64, bool) {
	// URLs containing "unpriced" simulate articles the quote service
	// does not know about
	if strings.Contains(url, "unpriced") {
		return 0, false
	}

	mu.Lock()
	defer mu.Unlock()
	price, ok := prices[url]
	if !ok {
		price = 10 + rand.Float64()*90
	}
	price += (rand.Float64() - 0.5) * 2
	if price < 1 {
		price = 1
	}
	prices[url] = price
	return price, true
}

func main() {
	http.HandleFunc("/event", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, tracking-id, user-id")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		log.Printf("🔑 tracking-id: %s  user-id: %s", r.Header.Get("tracking-id"), r.Header.Get("user-id"))

		var event map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			log.Printf("❌ Invalid JSON")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid JSON"})
			return
		}

		prettyJSON, _ := json.MarshalIndent(event, "", "  ")
		log.Printf("📊 Received %v event:\n%s", event["type"], string(prettyJSON))

		// Events carrying trigger_error simulate a collector outage
		if trigger, exists := event["trigger_error"]; exists && trigger == true {
			log.Printf("💥 Simulated server error (client should keep going)")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Simulated server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"user_id":  uuid.NewString(),
			"event_id": uuid.NewString(),
		})
	})

	http.HandleFunc("/v3/price", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			URLs     []string `json:"urls"`
			Currency string   `json:"currency"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		out := map[string]interface{}{}
		for _, url := range req.URLs {
			if price, ok := quoteFor(url); ok {
				out[url] = map[string]interface{}{
					"price":    price,
					"currency": req.Currency,
				}
				log.Printf("💰 Quoted %s: %.2f %s", url, price, req.Currency)
			} else {
				log.Printf("🚫 No quote for %s", url)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	})

	// /rules/<tracking-id>.json — flip showWidget to false to watch the
	// client suppress itself
	http.HandleFunc("/rules/", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("📜 Rules fetch: %s", r.URL.String())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"showWidget": true})
	})

	log.Printf("🚀 Pill simulator running at http://localhost:%d", PORT)
	log.Printf("📍 Collector:  http://localhost:%d/event", PORT)
	log.Printf("📍 Quotes:     http://localhost:%d/v3/price", PORT)
	log.Printf("📍 Rules:      http://localhost:%d/rules/<tracking-id>.json", PORT)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", PORT), nil))
}
