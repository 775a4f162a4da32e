// Seed script for creating demo atoms in a running cogspace server.
// Run with: go run ./scripts/seed.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

var (
	baseURL string
	apiKey  string
)

func main() {
	// Load environment
	envFile := os.Getenv("COGSPACE_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	baseURL = os.Getenv("COGSPACE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	apiKey = os.Getenv("API_KEY")

	concepts := []struct {
		name       string
		strength   float64
		confidence float64
	}{
		{"cat", 1.0, 1.0},
		{"dog", 1.0, 1.0},
		{"mammal", 1.0, 1.0},
		{"animal", 1.0, 1.0},
		{"pet", 0.9, 0.8},
	}

	ids := make(map[string]string)
	for _, c := range concepts {
		a := createNode("ConceptNode", c.name, c.strength, c.confidence)
		ids[c.name] = a.ID
		fmt.Printf("Created node [ConceptNode]: %s (%s)\n", c.name, a.ID)
	}

	likes := createNode("PredicateNode", "likes", 1.0, 1.0)
	fmt.Printf("Created node [PredicateNode]: likes (%s)\n", likes.ID)

	inheritance := []struct {
		child, parent string
		strength      float64
		confidence    float64
	}{
		{"cat", "mammal", 1.0, 0.95},
		{"dog", "mammal", 1.0, 0.95},
		{"mammal", "animal", 1.0, 0.99},
		{"cat", "pet", 0.8, 0.7},
		{"dog", "pet", 0.9, 0.8},
	}

	for _, in := range inheritance {
		l := createLink("InheritanceLink", []string{ids[in.child], ids[in.parent]}, in.strength, in.confidence)
		fmt.Printf("Created link [InheritanceLink]: %s -> %s (%s)\n", in.child, in.parent, l.ID)
	}

	pair := createLink("ListLink", []string{ids["dog"], ids["cat"]}, 1.0, 1.0)
	eval := createLink("EvaluationLink", []string{likes.ID, pair.ID}, 0.3, 0.6)
	fmt.Printf("Created link [EvaluationLink]: likes(dog, cat) (%s)\n", eval.ID)

	fmt.Println("\n=== Seed Complete ===")
	fmt.Println("\nTo inspect the store, use:")
	fmt.Printf("curl %s %s/v1/stats\n", authFlag(), baseURL)
	fmt.Printf("\nTo list links over cat:")
	fmt.Printf("\ncurl %s %s/v1/atoms/%s/incoming\n", authFlag(), baseURL, ids["cat"])
}

type atom struct {
	ID string `json:"id"`
}

func createNode(atomType, name string, strength, confidence float64) atom {
	return create("/v1/nodes/", map[string]any{
		"atom_type": atomType, "name": name, "strength": strength, "confidence": confidence,
	})
}

func createLink(atomType string, outgoing []string, strength, confidence float64) atom {
	return create("/v1/links/", map[string]any{
		"atom_type": atomType, "outgoing_ids": outgoing, "strength": strength, "confidence": confidence,
	})
}

func create(path string, body any) atom {
	data, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("Failed to encode request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(data))
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Failed to reach server: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		log.Fatalf("API error (%d): %s", resp.StatusCode, string(raw))
	}

	var a atom
	if err := json.Unmarshal(raw, &a); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}
	return a
}

func authFlag() string {
	if apiKey == "" {
		return ""
	}
	return fmt.Sprintf("-H 'Authorization: Bearer %s'", apiKey)
}
