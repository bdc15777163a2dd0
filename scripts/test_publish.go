// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/listings-marketplace/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	group := flag.String("group", "listing-geocode-workers", "consumer group to wait for")
	listingID := flag.String("id", "", "listing ID to re-geocode")
	flag.Parse()

	id, err := uuid.Parse(*listingID)
	if err != nil {
		log.Fatalf("Invalid listing ID %q: %v", *listingID, err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.ListingGeocodeEvent{
		ListingID:   id,
		RequestedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	msgID, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamListingGeocode,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamListingGeocode)
	fmt.Printf("   Message ID: %s\n", msgID)
	fmt.Printf("   Listing ID: %s\n", event.ListingID)

	fmt.Printf("\nWaiting for group %s to ack the message...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for worker")
			return
		case <-ticker.C:
			groups, err := client.XInfoGroups(ctx, domain.StreamListingGeocode).Result()
			if err != nil {
				continue
			}
			for _, g := range groups {
				if g.Name == *group && g.LastDeliveredID == msgID && g.Pending == 0 {
					fmt.Println("Message processed. Check the listing for new coordinates.")
					return
				}
			}
		}
	}
}
