package workers

import (
	"bytes"
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/photoclass/photoclassbackend/config"
	"github.com/photoclass/photoclassbackend/database"
	"github.com/photoclass/photoclassbackend/media"
	"github.com/photoclass/photoclassbackend/realtime"
	"github.com/photoclass/photoclassbackend/utils"
)

// ThumbnailJob asks for a preview of one captured photo. The payload rides
// along so workers never re-read the photo collection.
type ThumbnailJob struct {
	PhotoID      string
	PhotoDataURL string
}

// ThumbnailGenerator is the worker pool turning full-resolution captures
// into small JPEG previews. Preview generation is best-effort; losing a
// thumbnail never affects the photo records themselves.
type ThumbnailGenerator struct {
	JobQueue chan ThumbnailJob
	Config   config.Config
	DB       *sql.DB
	Media    media.Store
	Hub      *realtime.Hub
	Wg       sync.WaitGroup
	StopChan chan struct{}
	Pending  map[string]bool
	Mutex    sync.Mutex
}

func NewThumbnailGenerator(cfg config.Config, db *sql.DB, mediaStore media.Store, hub *realtime.Hub, queueSize, numWorkers int) *ThumbnailGenerator {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	gen := &ThumbnailGenerator{
		JobQueue: make(chan ThumbnailJob, queueSize),
		Config:   cfg,
		DB:       db,
		Media:    mediaStore,
		Hub:      hub,
		StopChan: make(chan struct{}),
		Pending:  make(map[string]bool),
	}

	gen.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go gen.worker(i)
	}
	log.Printf("started %d thumbnail worker(s) with queue size %d", numWorkers, queueSize)

	return gen
}

func (tg *ThumbnailGenerator) worker(id int) {
	defer tg.Wg.Done()
	log.Printf("thumbnail worker %d started", id)
	for {
		select {
		case job, ok := <-tg.JobQueue:
			if !ok {
				log.Printf("thumbnail worker %d stopping: job queue closed", id)
				return
			}
			tg.processJob(job)
			tg.Mutex.Lock()
			delete(tg.Pending, job.PhotoID)
			tg.Mutex.Unlock()

		case <-tg.StopChan:
			log.Printf("thumbnail worker %d stopping: stop signal received", id)
			return
		}
	}
}

func (tg *ThumbnailGenerator) processJob(job ThumbnailJob) {
	thumbBytes, err := utils.GenerateThumbnail(job.PhotoDataURL, tg.Config.ThumbnailMaxSize)
	if err != nil {
		log.Printf("ERROR generating thumbnail for photo %s: %v", job.PhotoID, err)
		return
	}

	relPath, err := tg.Media.Save(media.AssetTypeThumbnail, job.PhotoID+".jpg", bytes.NewReader(thumbBytes))
	if err != nil {
		log.Printf("ERROR saving thumbnail for photo %s: %v", job.PhotoID, err)
		return
	}

	if err := database.SetThumbnailInfo(tg.DB, job.PhotoID, relPath, time.Now().Unix()); err != nil {
		log.Printf("ERROR updating thumbnail record for photo %s after generation: %v", job.PhotoID, err)
		return
	}

	if tg.Hub != nil {
		tg.Hub.Broadcast(realtime.Event{Type: realtime.EventThumbnailDone, PhotoID: job.PhotoID})
	}
	log.Printf("generated thumbnail for photo %s at %s", job.PhotoID, relPath)
}

// QueueJob queues preview generation for a photo unless one is already
// pending
func (tg *ThumbnailGenerator) QueueJob(job ThumbnailJob) bool {
	tg.Mutex.Lock()
	if tg.Pending[job.PhotoID] {
		tg.Mutex.Unlock()
		return false
	}

	tg.Pending[job.PhotoID] = true
	tg.Mutex.Unlock()

	select {
	case tg.JobQueue <- job:
		return true
	default:
		log.Printf("WARNING: thumbnail job queue full, failed to queue photo %s", job.PhotoID)
		tg.Mutex.Lock()
		delete(tg.Pending, job.PhotoID)
		tg.Mutex.Unlock()
		return false
	}
}

func (tg *ThumbnailGenerator) Stop() {
	log.Println("stopping thumbnail generator...")
	close(tg.StopChan)
	tg.Wg.Wait()
	log.Println("all thumbnail workers stopped")
}
