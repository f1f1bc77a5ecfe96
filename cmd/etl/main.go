package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/config"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/etl"
)

func main() {
	csvPath := flag.String("csv", "productos_ecommerce.csv", "chemin de l'export produits CSV")
	flag.Parse()

	config.Load()

	log.Println("🚀 Démarrage de l'ETL produits...")
	database.ConnectMongo()
	defer database.CloseMongo()
	database.ConnectElastic()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := etl.Run(ctx, *csvPath); err != nil {
		log.Fatal("❌ ETL en échec:", err)
	}
	log.Println("🎉 ETL terminé")
}
