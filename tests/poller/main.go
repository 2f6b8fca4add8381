package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// мини-приложение опрашивает эти ручки каждые несколько секунд
const baseURL = "http://localhost:8080/api"

var paths = []string{
	"/views/stats",
	"/views/my-orders",
	"/views/my-bids",
	"/orders/active",
}

var users = []string{"client-1", "client-2", "client-3", "exchanger-1", "exchanger-2"}

func main() {
	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(doRequest)
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func doRequest() {
	url := baseURL + paths[rand.Intn(len(paths))]
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
		return
	}
	user := users[rand.Intn(len(users))]
	req.Header.Set("X-User-ID", user)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
		return
	}
	fmt.Println("GET", url, user, "->", resp.Status)
	resp.Body.Close()
}
