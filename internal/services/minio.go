package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"

	"github.com/minio/minio-go/v7"
)

var unsafeFilenameChars = regexp.MustCompile(`[^0-9A-Za-z_.-]`)

// UploadImage pousse un fichier multipart vers MinIO sous un nom unique et
// renvoie l'URL publique de l'objet.
func UploadImage(ctx context.Context, prefix string, file *multipart.FileHeader) (string, error) {
	if database.MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Nom unique : préfixe + timestamp ms + nom nettoyé
	cleanName := unsafeFilenameChars.ReplaceAllString(filepath.Base(file.Filename), "_")
	objectName := fmt.Sprintf("%s/%d_%s", prefix, time.Now().UnixMilli(), cleanName)

	bucket := os.Getenv("MINIO_BUCKET")
	_, err = database.MinioClient.PutObject(ctx, bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return PublicObjectURL(objectName), nil
}

// PublicObjectURL construit l'URL publique d'un objet du bucket.
func PublicObjectURL(objectName string) string {
	publicBase := os.Getenv("MINIO_PUBLIC_URL")
	if publicBase == "" {
		publicBase = fmt.Sprintf("http://%s", os.Getenv("MINIO_ENDPOINT"))
	}
	return fmt.Sprintf("%s/%s/%s", publicBase, os.Getenv("MINIO_BUCKET"), objectName)
}

// GenerateSignedURL génère une URL GET signée avec expiration pour un objet
// (accepte l'URL publique complète ou le chemin relatif au bucket).
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	if database.MinioClient == nil {
		return objectPath, nil
	}

	bucket := os.Getenv("MINIO_BUCKET")
	key := objectPath

	// Ne garder que le chemin relatif au bucket
	if idx := strings.Index(key, "/"+bucket+"/"); idx >= 0 {
		key = key[idx+len(bucket)+2:]
	}

	presignedURL, err := database.MinioClient.PresignedGetObject(ctx, bucket, key, duration, make(url.Values))
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
