// Interactive terminal client for the assistant: reads questions from stdin
// and posts them to /ask on a single session.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/sanju-subash/Cloudnest-rag/messages"
)

func main() {
	baseURL := os.Getenv("ASSISTANT_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	sessionID := uuid.New().String()
	log.Printf("💬 Chatting with %s (session %s)", baseURL, sessionID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := scanner.Text()
		if question == "" {
			continue
		}

		resp, err := ask(baseURL, question, sessionID)
		if err != nil {
			log.Printf("❌ Request failed: %v", err)
			continue
		}

		fmt.Println(resp.Answer)
		if resp.Kind == messages.KindBill {
			fmt.Printf("(bill %s, total Rs %d, PDF at %s/bill/pdf?session_id=%s)\n",
				resp.BillID, resp.Total, baseURL, sessionID)
		}
	}
}

func ask(baseURL, question, sessionID string) (*messages.Response, error) {
	body, err := sonic.Marshal(messages.AskRequest{Question: question, SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	httpResp, err := http.Post(baseURL+"/ask", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", httpResp.StatusCode, data)
	}

	var resp messages.Response
	if err := sonic.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
