package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"diff-finder/api/internal/imgproc"
)

func (r *Router) acceptDocument(msg tgbotapi.Message) {
	if !imgproc.AllowedFile(msg.Document.FileName) {
		r.send(msg.Chat.ID, textNotAnImage)
		return
	}
	r.acceptPhoto(msg, msg.Document.FileID)
}

func (r *Router) acceptPhoto(msg tgbotapi.Message, fileID string) {
	cid := msg.Chat.ID
	imgBytes, err := r.download(fileID)
	if err != nil {
		r.SendError(cid, fmt.Errorf("download: %w", err))
		return
	}

	if msg.MediaGroupID == "" {
		r.addSingle(cid, imgBytes)
		return
	}

	key := "grp:" + msg.MediaGroupID
	for {
		bi, _ := r.batches.LoadOrStore(key, &photoBatch{
			ChatID: cid, Key: key, MediaGroupID: msg.MediaGroupID, images: make([][]byte, 0, 2),
		})
		b := bi.(*photoBatch)

		b.mu.Lock()
		if b.done {
			// already handed to processBatch, start a new one
			b.mu.Unlock()
			continue
		}
		b.images = append(b.images, imgBytes)
		if b.timer != nil && b.timer.Stop() {
			r.wg.Done() // the stopped callback never runs
		}
		r.wg.Add(1)
		b.timer = time.AfterFunc(r.debounce(), func() {
			defer r.wg.Done()
			r.processBatch(key)
		})
		b.mu.Unlock()
		return
	}
}

// addSingle pairs a lone photo with the chat's pending one or makes it pending.
func (r *Router) addSingle(chatID int64, img []byte) {
	first, ok := r.Pending.Take(chatID)
	if !ok {
		r.Pending.Put(chatID, img)
		r.send(chatID, textFirstAccepted)
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.comparePair(context.Background(), chatID, first, img)
	}()
}

func (r *Router) processBatch(key string) {
	bi, ok := r.batches.Load(key)
	if !ok {
		return
	}
	b := bi.(*photoBatch)

	b.mu.Lock()
	if b.done {
		b.mu.Unlock()
		return
	}
	b.done = true
	if b.timer != nil && b.timer.Stop() {
		r.wg.Done() // a newer item re-armed the timer, this run takes its images too
	}
	images := append([][]byte(nil), b.images...)
	chatID := b.ChatID
	r.batches.Delete(key)
	b.mu.Unlock()

	switch {
	case len(images) == 0:
		return
	case len(images) == 1:
		r.addSingle(chatID, images[0])
		return
	case len(images) > 2:
		r.send(chatID, textExtraIgnored)
	}
	r.Pending.Delete(chatID)
	r.comparePair(context.Background(), chatID, images[0], images[1])
}

func (r *Router) comparePair(ctx context.Context, chatID int64, raw1, raw2 []byte) {
	r.send(chatID, textWorking)

	img1, err := imgproc.Prepare(bytes.NewReader(raw1), r.MaxSide)
	if err != nil {
		r.SendError(chatID, err)
		return
	}
	img2, err := imgproc.Prepare(bytes.NewReader(raw2), r.MaxSide)
	if err != nil {
		r.SendError(chatID, err)
		return
	}

	out, err := r.pipelineFor(chatID).Run(ctx, img1, img2)
	if err != nil {
		r.SendError(chatID, err)
		return
	}
	r.Log.Info("telegram compare done", zap.Int64("chat_id", chatID), zap.Int("count", len(out.Differences)))

	if out.Annotated == nil {
		r.send(chatID, textNoDifferences)
		return
	}
	png, err := imgproc.EncodePNG(out.Annotated)
	if err != nil {
		r.SendError(chatID, err)
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "differences.png", Bytes: png})
	photo.Caption = resultCaption(out.Differences)
	if _, err := r.Bot.Send(photo); err != nil {
		r.SendError(chatID, fmt.Errorf("send photo: %w", err))
	}
}

func (r *Router) download(fileID string) ([]byte, error) {
	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	resp, err := r.httpClient().Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

func (r *Router) httpClient() *http.Client {
	if r.HTTP != nil {
		return r.HTTP
	}
	return &http.Client{Timeout: 60 * time.Second}
}

func (r *Router) debounce() time.Duration {
	if r.Debounce > 0 {
		return r.Debounce
	}
	return debounce
}
