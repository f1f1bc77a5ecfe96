package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// --- Clients Globaux ---
var (
	MongoClient   *mongo.Client
	MongoStoreDB  *mongo.Database
	RedisClient   *redis.Client
	ElasticClient *elasticsearch.Client
	MinioClient   *minio.Client
)

// Collections du storefront (noms hérités de la base existante)
func Products() *mongo.Collection { return MongoStoreDB.Collection("productos") }
func Users() *mongo.Collection    { return MongoStoreDB.Collection("usuarios") }
func Sessions() *mongo.Collection { return MongoStoreDB.Collection("sessions") }
func Images() *mongo.Collection   { return MongoStoreDB.Collection("images") }

// ConnectDatabases initialise toutes les connexions. MongoDB et Redis sont
// obligatoires ; Elasticsearch et MinIO sont optionnels (les handlers
// retombent sur Mongo / uploads locaux si absents).
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectMongo(ctx)
	connectRedis(ctx)
	connectElastic()
	connectMinIO(ctx)

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// MONGODB
// =============================================
func connectMongo(ctx context.Context) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
		log.Println("⚠️ MONGO_URI absent — fallback sur localhost")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("❌ Erreur connexion MongoDB:", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("❌ MongoDB injoignable:", err)
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "mi_ecommerce"
	}

	MongoClient = client
	MongoStoreDB = client.Database(dbName)

	ensureIndexes(ctx)
	log.Println("✅ Connecté à MongoDB :", dbName)
}

// ensureIndexes crée les index uniques sur les utilisateurs (google_id, email).
func ensureIndexes(ctx context.Context) {
	unique := options.Index().SetUnique(true).SetSparse(true)
	_, err := Users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: map[string]interface{}{"google_id": 1}, Options: unique},
		{Keys: map[string]interface{}{"email": 1}, Options: unique},
	})
	if err != nil {
		log.Println("⚠️ Erreur création index usuarios:", err)
	}
}

// ConnectMongo n'initialise que MongoDB (outillage hors serveur : ETL).
func ConnectMongo() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	connectMongo(ctx)
}

// ConnectElastic n'initialise qu'Elasticsearch (optionnel, best-effort).
func ConnectElastic() {
	connectElastic()
}

// CloseMongo ferme la connexion MongoDB.
func CloseMongo() {
	if MongoClient != nil {
		_ = MongoClient.Disconnect(context.Background())
		log.Println("🔌 Connexion MongoDB fermée")
	}
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST"),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ ELASTIC_URL absent — recherche via Mongo uniquement")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️ Erreur création client Elasticsearch:", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable:", err)
		return
	}
	defer res.Body.Close()

	ElasticClient = client
	log.Println("✅ Connecté à Elasticsearch")
}

// =============================================
// MINIO
// =============================================
func connectMinIO(ctx context.Context) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT absent — uploads d'images désactivés")
		return
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Fatal("❌ Erreur connexion MinIO:", err)
	}

	bucketName := os.Getenv("MINIO_BUCKET")
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Fatal("❌ Erreur vérification bucket MinIO:", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("❌ Erreur création bucket MinIO:", err)
		}
		log.Println("🪣 Bucket créé :", bucketName)
	} else {
		log.Println("🪣 Bucket MinIO déjà présent :", bucketName)
	}

	MinioClient = client
	log.Println("✅ Connecté à MinIO :", endpoint)
}
