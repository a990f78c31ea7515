package pill

import (
	"reflect"
	"testing"
)

func createContractConfig() ClientConfig {
	config := ClientConfig{
		Endpoint:      "https://collector/event",
		PriceEndpoint: "https://quote/v3/price",
		RulesEndpoint: "https://rules",
	}
	config.Adapters.HTTPAdapter = &fakeHTTP{}
	config.Adapters.PageAdapter = newTestPage()
	config.Adapters.StorageAdapter = newMemStore()
	config.Adapters.LoggerAdapter = testLogger()
	return config
}

// TestContractCompliance validates that the public API signatures stay stable
func TestContractCompliance(t *testing.T) {
	t.Run("NewClient signature", func(t *testing.T) {
		funcType := reflect.ValueOf(NewClient).Type()

		if funcType.NumIn() != 1 {
			t.Errorf("NewClient should take 1 parameter, got %d", funcType.NumIn())
		}
		if funcType.NumOut() != 2 {
			t.Errorf("NewClient should return 2 values, got %d", funcType.NumOut())
		}
		if funcType.Out(1).Name() != "error" {
			t.Errorf("NewClient second return should be error, got %s", funcType.Out(1).Name())
		}
	})

	t.Run("Required methods exist", func(t *testing.T) {
		client, err := NewClient(createContractConfig())
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		clientValue := reflect.ValueOf(client)

		requiredMethods := []string{
			"Init",
			"TrackPage",
			"OnScroll",
			"OnClick",
			"Flush",
			"QueuedEvents",
			"Disabled",
			"Dispose",
		}

		for _, methodName := range requiredMethods {
			if !clientValue.MethodByName(methodName).IsValid() {
				t.Errorf("Required method %s not found", methodName)
			}
		}
	})

	t.Run("Method signatures", func(t *testing.T) {
		client, _ := NewClient(createContractConfig())
		clientValue := reflect.ValueOf(client)

		// Init() error
		initType := clientValue.MethodByName("Init").Type()
		if initType.NumIn() != 0 || initType.NumOut() != 1 {
			t.Error("Init should take no parameters and return error")
		}

		// TrackPage(string) — no return
		trackType := clientValue.MethodByName("TrackPage").Type()
		if trackType.NumIn() != 1 || trackType.NumOut() != 0 {
			t.Error("TrackPage should take 1 parameter and return nothing")
		}

		// OnClick(Click) — no return
		clickType := clientValue.MethodByName("OnClick").Type()
		if clickType.NumIn() != 1 || clickType.NumOut() != 0 {
			t.Error("OnClick should take 1 parameter and return nothing")
		}

		// QueuedEvents() int
		queuedType := clientValue.MethodByName("QueuedEvents").Type()
		if queuedType.NumIn() != 0 || queuedType.NumOut() != 1 || queuedType.Out(0).Kind() != reflect.Int {
			t.Error("QueuedEvents should take no parameters and return int")
		}

		// Dispose() error
		disposeType := clientValue.MethodByName("Dispose").Type()
		if disposeType.NumIn() != 0 || disposeType.NumOut() != 1 {
			t.Error("Dispose should take no parameters and return error")
		}
	})
}

// TestEventStructCompliance validates Event struct shape
func TestEventStructCompliance(t *testing.T) {
	eventType := reflect.TypeOf(Event{})

	requiredFields := map[string]string{
		"Type":    "string",
		"Payload": "map[string]interface {}",
	}

	for fieldName, expectedType := range requiredFields {
		field, found := eventType.FieldByName(fieldName)
		if !found {
			t.Errorf("Required field %s not found in Event struct", fieldName)
			continue
		}
		if actual := field.Type.String(); actual != expectedType {
			t.Errorf("Field %s has type %s, expected %s", fieldName, actual, expectedType)
		}
	}
}

// TestSessionGrantCompliance validates the collector response shape
func TestSessionGrantCompliance(t *testing.T) {
	grantType := reflect.TypeOf(SessionGrant{})

	for field, tag := range map[string]string{"UserID": "user_id", "EventID": "event_id"} {
		f, found := grantType.FieldByName(field)
		if !found {
			t.Fatalf("Required field %s not found in SessionGrant", field)
		}
		if got := f.Tag.Get("json"); got != tag {
			t.Errorf("SessionGrant.%s json tag is %q, expected %q", field, got, tag)
		}
	}
}

// TestContractBehavior validates behavior the host integration relies on
func TestContractBehavior(t *testing.T) {
	t.Run("QueuedEvents starts at zero", func(t *testing.T) {
		client, _ := NewClient(createContractConfig())
		if client.QueuedEvents() != 0 {
			t.Error("fresh client should have no queued events")
		}
	})

	t.Run("Notifications before Init are dropped", func(t *testing.T) {
		client, _ := NewClient(createContractConfig())
		client.OnScroll()
		client.OnClick(Click{})
		client.TrackPage("https://other/")
		if client.QueuedEvents() != 0 {
			t.Error("pre-Init notifications must be ignored")
		}
	})

	t.Run("Dispose before Init is a no-op", func(t *testing.T) {
		client, _ := NewClient(createContractConfig())
		if err := client.Dispose(); err != nil {
			t.Errorf("Dispose before Init should return nil, got: %v", err)
		}
	})

	t.Run("Defaults applied", func(t *testing.T) {
		config := createContractConfig()
		client, err := NewClient(config)
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		if client.config.Currency != DefaultCurrency {
			t.Errorf("expected default currency %q, got %q", DefaultCurrency, client.config.Currency)
		}
		if client.config.PricePollInterval != DefaultPricePollInterval {
			t.Error("expected default price poll interval")
		}
		if client.config.DebounceDelay != DefaultDebounceDelay {
			t.Error("expected default debounce delay")
		}
	})
}

// TestReliability performs stress testing on the event path
func TestReliability(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping reliability tests in short mode")
	}

	t.Run("Concurrent notifications", func(t *testing.T) {
		client, _ := NewClient(createContractConfig())
		client.Init()
		defer client.Dispose()

		done := make(chan bool, 100)
		for i := 0; i < 50; i++ {
			go func() {
				defer func() { done <- true }()
				for j := 0; j < 20; j++ {
					client.OnScroll()
				}
			}()
		}
		for i := 0; i < 50; i++ {
			go func(id int) {
				defer func() { done <- true }()
				for j := 0; j < 20; j++ {
					client.OnClick(Click{Target: &SimpleNode{TagName: "div"}, X: id, Y: j})
				}
			}(i)
		}

		for i := 0; i < 100; i++ {
			<-done
		}
	})

	t.Run("Concurrent pipeline access", func(t *testing.T) {
		session := newTestSession(nil)
		transport := NewTransport("https://collector/event", "t-123", &fakeHTTP{}, session, testLogger())
		pipeline := NewPipeline(transport, session, testLogger())
		session.Bind(SessionGrant{EventID: "e-1"})

		done := make(chan bool, 50)
		for i := 0; i < 50; i++ {
			go func(id int) {
				defer func() { done <- true }()
				for j := 0; j < 10; j++ {
					pipeline.Enqueue(EventScroll, map[string]any{"id": id, "iteration": j})
				}
			}(i)
		}
		for i := 0; i < 50; i++ {
			<-done
		}
	})
}
