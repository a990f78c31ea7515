package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	pill "github.com/zzazz/pill-go"
	"github.com/zzazz/pill-go/adapters"
)

var client *pill.Client
var page *ConsolePageAdapter
var scanner *bufio.Scanner
var clickCounter int

func main() {
	scanner = bufio.NewScanner(os.Stdin)
	page = NewConsolePageAdapter("playground-tracking-id", "http://localhost/articles/1")

	config := pill.ClientConfig{
		Endpoint:      "http://localhost:3000/event",
		PriceEndpoint: "http://localhost:3000/v3/price",
		RulesEndpoint: "http://localhost:3000/rules",
	}
	config.Adapters.PageAdapter = page
	config.Adapters.StorageAdapter = adapters.NewFileStorageAdapter("pill_session.json")
	config.Adapters.LoggerAdapter = adapters.NewPrintLoggerAdapter(adapters.LogLevelDebug)

	var err error
	client, err = pill.NewClient(config)
	if err != nil {
		fmt.Printf("❌ Failed to create client: %v\n", err)
		return
	}

	if err := client.Init(); err != nil {
		fmt.Printf("❌ Failed to initialize client: %v\n", err)
		return
	}

	fmt.Println("🎯 Pill Interactive Client")
	fmt.Println("Connected to: http://localhost:3000")
	fmt.Println()

	for {
		showMenu()
		choice := readInput("Choose an option: ")

		switch choice {
		case "1":
			navigate()
		case "2":
			navigateUnpriced()
		case "3":
			scroll()
		case "4":
			clickLink()
		case "5":
			clickNowhere()
		case "6":
			viewQueue()
		case "7":
			flush()
		case "8":
			disposeClient()
		case "9":
			fmt.Println("👋 Goodbye!")
			client.Dispose()
			return
		default:
			fmt.Println("❌ Invalid option. Please try again.")
			fmt.Println()
		}
	}
}

func showMenu() {
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("🧭 Navigation")
	fmt.Println("1. Navigate to Next Article")
	fmt.Println("2. Navigate to Unpriced Article (pill should hide)")
	fmt.Println()
	fmt.Println("🖱  Interaction")
	fmt.Println("3. Scroll the Page")
	fmt.Println("4. Click a Link")
	fmt.Println("5. Click Empty Space")
	fmt.Println()
	fmt.Println("🔄 Lifecycle")
	fmt.Println("6. View Queued Events")
	fmt.Println("7. Manual Flush")
	fmt.Println("8. Dispose Client")
	fmt.Println("9. Exit")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

func readInput(prompt string) string {
	fmt.Print(prompt)
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}

var articleCounter = 1

func navigate() {
	articleCounter++
	url := fmt.Sprintf("http://localhost/articles/%d", articleCounter)
	fmt.Printf("\n🧭 Navigating to %s\n", url)
	page.Navigate(url)
	client.TrackPage(url)
	fmt.Println("✅ New heartbeat chain started")
	fmt.Println()
}

func navigateUnpriced() {
	url := "http://localhost/unpriced/article"
	fmt.Printf("\n🧭 Navigating to %s\n", url)
	page.Navigate(url)
	client.TrackPage(url)
	fmt.Println("✅ Quote service has no price here; watch the pill hide")
	fmt.Println()
}

func scroll() {
	input := readInput("\n🖱  Scroll to position (e.g. 400): ")
	position, err := strconv.Atoi(input)
	if err != nil {
		fmt.Printf("❌ Invalid position: %v\n\n", err)
		return
	}
	page.ScrollTo(position)
	client.OnScroll()
	fmt.Println("✅ Scroll notification sent (debounced)")
	fmt.Println()
}

func clickLink() {
	clickCounter++
	anchor := &pill.SimpleNode{
		TagName: "a",
		Attrs:   map[string]string{"href": fmt.Sprintf("http://localhost/articles/%d", clickCounter)},
	}
	span := &pill.SimpleNode{TagName: "span", ParentNode: anchor}

	fmt.Println("\n🖱  Clicking a <span> inside a link")
	client.OnClick(pill.Click{Target: span, X: 120, Y: 240})
	fmt.Println("✅ Click notification sent (debounced)")
	fmt.Println()
}

func clickNowhere() {
	fmt.Println("\n🖱  Clicking a bare <div>")
	client.OnClick(pill.Click{Target: &pill.SimpleNode{TagName: "div"}, X: 10, Y: 10})
	fmt.Println("✅ Click notification sent; element.url will be null")
	fmt.Println()
}

func viewQueue() {
	fmt.Printf("\n👀 Queued events waiting for a session: %d\n\n", client.QueuedEvents())
}

func flush() {
	fmt.Println("\n🔄 Flushing events...")
	client.Flush()
	fmt.Println("✅ Flush requested")
	fmt.Println()
}

func disposeClient() {
	fmt.Println("\n🔄 Dispose Client")
	client.Dispose()
	fmt.Println("✅ Client disposed")
	fmt.Println()
}
